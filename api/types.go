package api

import (
	"context"

	"github.com/ruteri/kyc-onboarding-backend/onboarding"
)

// Onboarder runs the onboarding handshake for one user.
type Onboarder interface {
	Onboard(ctx context.Context, req onboarding.OnboardingRequest) (*onboarding.Result, error)
}

// OnboardingRequest is the JSON body (or query string) of an onboarding call.
type OnboardingRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	// UserDID is optional; a DID is registered when it is empty.
	UserDID string `json:"userDid,omitempty"`
	// Namespace selects the DID network for newly registered DIDs.
	Namespace string `json:"namespace,omitempty"`
}

// OnboardingResponse carries everything the front end needs to start the KYC
// widget for the user.
type OnboardingResponse struct {
	KYCAdminToken              string `json:"kycAdminToken"`
	SSIAdminToken              string `json:"ssiAdminToken"`
	UserBearerToken            string `json:"userBearerToken"`
	IssuerDID                  string `json:"issuerDid"`
	IssuerVerificationMethodID string `json:"issuerVerificationMethodId"`
	SessionID                  string `json:"sessionId"`
	UserDID                    string `json:"userDid"`
	UserVerificationMethodID   string `json:"userVerificationMethodId,omitempty"`
}

// ErrorResponse is returned with every non-200 status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewOnboardingResponse flattens a handshake result into the wire response.
func NewOnboardingResponse(result *onboarding.Result) OnboardingResponse {
	return OnboardingResponse{
		KYCAdminToken:              result.AdminPair.KYCAdminToken,
		SSIAdminToken:              result.AdminPair.SSIAdminToken,
		UserBearerToken:            result.UserToken,
		IssuerDID:                  result.Issuer.DID,
		IssuerVerificationMethodID: result.Issuer.VerificationMethodID,
		SessionID:                  result.Session.SessionID,
		UserDID:                    result.UserDID.DID,
		UserVerificationMethodID:   result.UserDID.VerificationMethodID,
	}
}

// ToOnboarding converts the wire request for the orchestrator.
func (r OnboardingRequest) ToOnboarding() onboarding.OnboardingRequest {
	return onboarding.OnboardingRequest{
		Name:      r.Name,
		Email:     r.Email,
		UserDID:   r.UserDID,
		Namespace: r.Namespace,
	}
}
