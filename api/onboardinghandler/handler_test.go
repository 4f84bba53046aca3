package onboardinghandler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/kyc-onboarding-backend/api"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/ruteri/kyc-onboarding-backend/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOnboarder struct {
	mock.Mock
}

func (m *mockOnboarder) Onboard(ctx context.Context, req onboarding.OnboardingRequest) (*onboarding.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.Result), args.Error(1)
}

var testResult = &onboarding.Result{
	AdminPair: &interfaces.AdminCredentialPair{KYCAdminToken: "kyc-admin", SSIAdminToken: "ssi-admin"},
	Session:   &interfaces.VerificationSession{SessionID: "sess-1"},
	UserToken: "final-token",
	Issuer: interfaces.IssuerIdentity{
		DID:                  "did:hid:issuer",
		VerificationMethodID: "did:hid:issuer#key-1",
	},
	UserDID: interfaces.UserDID{DID: "did:hid:user", VerificationMethodID: "did:hid:user#key-1"},
}

func newTestRouter(onboarder api.Onboarder) *chi.Mux {
	handler := NewHandler(onboarder, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	return mux
}

func TestHandleOnboard_Success(t *testing.T) {
	tests := []struct {
		name string
		req  *http.Request
	}{
		{
			name: "post json body",
			req: httptest.NewRequest(http.MethodPost, "/api/onboarding",
				strings.NewReader(`{"name":"John","email":"john@example.com","namespace":"testnet"}`)),
		},
		{
			name: "get query",
			req:  httptest.NewRequest(http.MethodGet, "/api/onboarding?name=John&email=john@example.com&namespace=testnet", nil),
		},
		{
			name: "legacy route",
			req:  httptest.NewRequest(http.MethodGet, "/get-required-tokens-and-session-for-a-user?name=John&email=john@example.com&namespace=testnet", nil),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onboarder := &mockOnboarder{}
			onboarder.On("Onboard", mock.Anything, onboarding.OnboardingRequest{
				Name:      "John",
				Email:     "john@example.com",
				Namespace: "testnet",
			}).Return(testResult, nil)

			w := httptest.NewRecorder()
			newTestRouter(onboarder).ServeHTTP(w, tt.req)

			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.JSONEq(t, `{
				"kycAdminToken": "kyc-admin",
				"ssiAdminToken": "ssi-admin",
				"userBearerToken": "final-token",
				"issuerDid": "did:hid:issuer",
				"issuerVerificationMethodId": "did:hid:issuer#key-1",
				"sessionId": "sess-1",
				"userDid": "did:hid:user",
				"userVerificationMethodId": "did:hid:user#key-1"
			}`, w.Body.String())
			onboarder.AssertExpectations(t)
		})
	}
}

func TestHandleOnboard_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		req     *http.Request
		wantErr string
	}{
		{
			name:    "missing email",
			req:     httptest.NewRequest(http.MethodPost, "/api/onboarding", strings.NewReader(`{"name":"John"}`)),
			wantErr: interfaces.ErrMissingEmail.Error(),
		},
		{
			name:    "blank email",
			req:     httptest.NewRequest(http.MethodPost, "/api/onboarding", strings.NewReader(`{"name":"John","email":"  "}`)),
			wantErr: interfaces.ErrMissingEmail.Error(),
		},
		{
			name:    "blank email query",
			req:     httptest.NewRequest(http.MethodGet, "/api/onboarding?email=%20%20", nil),
			wantErr: interfaces.ErrMissingEmail.Error(),
		},
		{
			name:    "malformed body",
			req:     httptest.NewRequest(http.MethodPost, "/api/onboarding", strings.NewReader(`{"email":`)),
			wantErr: "invalid request body",
		},
		{
			name:    "unknown field",
			req:     httptest.NewRequest(http.MethodPost, "/api/onboarding", strings.NewReader(`{"email":"a@b.c","role":"admin"}`)),
			wantErr: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onboarder := &mockOnboarder{}

			w := httptest.NewRecorder()
			newTestRouter(onboarder).ServeHTTP(w, tt.req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var errResp api.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.Contains(t, errResp.Error, tt.wantErr)
			onboarder.AssertNotCalled(t, "Onboard", mock.Anything, mock.Anything)
		})
	}
}

func TestHandleOnboard_HandshakeFailure(t *testing.T) {
	onboarder := &mockOnboarder{}
	onboarder.On("Onboard", mock.Anything, mock.Anything).Return(nil, &onboarding.StageError{
		Stage: onboarding.StageSessionOpen,
		Step:  "sign_claims",
		Err:   &interfaces.UpstreamError{Kind: interfaces.ErrClaimSigning, Op: "ssi.sign", StatusCode: 500, Body: "issuer key unavailable"},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/onboarding?email=a@b.c&userDid=did:x:1", nil)
	newTestRouter(onboarder).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "issuer key unavailable")
	assert.Contains(t, errResp.Error, "sign_claims")
}

func TestClient_Onboard(t *testing.T) {
	onboarder := &mockOnboarder{}
	onboarder.On("Onboard", mock.Anything, onboarding.OnboardingRequest{Email: "a@b.c", UserDID: "did:x:1"}).Return(testResult, nil)
	onboarder.On("Onboard", mock.Anything, onboarding.OnboardingRequest{Email: "fail@b.c"}).Return(nil, &onboarding.StageError{
		Stage: onboarding.StageStart,
		Step:  "acquire_admin_credentials",
		Err:   interfaces.ErrUpstreamAuth,
	})

	srv := httptest.NewServer(newTestRouter(onboarder))
	defer srv.Close()

	client := NewClient(srv.URL, nil)

	resp, err := client.Onboard(context.Background(), api.OnboardingRequest{Email: "a@b.c", UserDID: "did:x:1"})
	require.NoError(t, err)
	assert.Equal(t, "final-token", resp.UserBearerToken)
	assert.Equal(t, "sess-1", resp.SessionID)

	_, err = client.Onboard(context.Background(), api.OnboardingRequest{Email: "fail@b.c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin token issuance failed")
}
