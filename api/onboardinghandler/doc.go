// Package onboardinghandler exposes the onboarding handshake over HTTP and
// provides a client for it.
//
// # Routes
//
//   - POST /api/onboarding with a JSON api.OnboardingRequest body
//   - GET /api/onboarding?email=...&name=...&userDid=...&namespace=...
//   - GET /get-required-tokens-and-session-for-a-user, same as the GET route
//
// When userDid is omitted a new DID is registered for the user after the KYC
// session is opened. Any failure, whether bad input or a failed upstream
// step, is answered with 400 and {"error": "..."}.
//
// # Usage Example
//
//	handler := onboardinghandler.NewHandler(orchestrator, logger)
//	router := chi.NewRouter()
//	handler.RegisterRoutes(router)
//
//	client := onboardinghandler.NewClient("http://localhost:8080", nil)
//	resp, err := client.Onboard(ctx, api.OnboardingRequest{Email: "john@example.com"})
package onboardinghandler
