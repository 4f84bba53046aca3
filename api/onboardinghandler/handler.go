package onboardinghandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/kyc-onboarding-backend/api"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/ruteri/kyc-onboarding-backend/onboarding"
)

// maxRequestBody bounds onboarding request bodies.
const maxRequestBody = 64 << 10

// Handler serves the onboarding endpoint.
type Handler struct {
	onboarder api.Onboarder
	log       *slog.Logger
}

// NewHandler creates a handler that runs every request through onboarder.
func NewHandler(onboarder api.Onboarder, log *slog.Logger) *Handler {
	return &Handler{
		onboarder: onboarder,
		log:       log,
	}
}

// RegisterRoutes registers:
//   - POST /api/onboarding - JSON body
//   - GET /api/onboarding - query parameters
//   - GET /get-required-tokens-and-session-for-a-user - legacy alias of the GET route
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/api/onboarding", h.HandleOnboard)
	r.Get("/api/onboarding", h.HandleOnboard)
	r.Get("/get-required-tokens-and-session-for-a-user", h.HandleOnboard)
}

// HandleOnboard runs the onboarding handshake for the user in the request.
//
// Response: JSON-encoded api.OnboardingResponse
//
// Status codes:
//   - 200 OK: handshake completed
//   - 400 Bad Request: invalid request or any handshake failure, as api.ErrorResponse
func (h *Handler) HandleOnboard(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(w, r)
	if err != nil {
		h.log.Debug("Invalid onboarding request", "err", err)
		writeError(w, err)
		return
	}

	result, err := h.onboarder.Onboard(r.Context(), req.ToOnboarding())
	if err != nil {
		attrs := []any{"err", err}
		var stageErr *onboarding.StageError
		if errors.As(err, &stageErr) {
			attrs = append(attrs, slog.String("stage", stageErr.Stage.String()), slog.String("step", stageErr.Step))
		}
		var upstreamErr *interfaces.UpstreamError
		if errors.As(err, &upstreamErr) {
			attrs = append(attrs, slog.Int("upstream_status", upstreamErr.StatusCode))
		}
		h.log.Error("Onboarding flow failed", attrs...)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.NewOnboardingResponse(result)); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func decodeRequest(w http.ResponseWriter, r *http.Request) (api.OnboardingRequest, error) {
	var req api.OnboardingRequest
	if r.Method == http.MethodGet {
		q := r.URL.Query()
		req = api.OnboardingRequest{
			Name:      q.Get("name"),
			Email:     q.Get("email"),
			UserDID:   q.Get("userDid"),
			Namespace: q.Get("namespace"),
		}
	} else {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return req, errors.New("invalid request body: " + err.Error())
		}
	}

	if strings.TrimSpace(req.Email) == "" {
		return req, interfaces.ErrMissingEmail
	}
	return req, nil
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: err.Error()})
}
