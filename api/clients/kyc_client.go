package clients

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// KYCClient talks to the KYC provider's session and exchange endpoints.
type KYCClient struct {
	upstream
}

var _ interfaces.IdentitySessionClient = (*KYCClient)(nil)

func NewKYCClient(baseURL string, httpClient *http.Client, log *slog.Logger) *KYCClient {
	return &KYCClient{upstream: newUpstream(baseURL, httpClient, log)}
}

// OpenSession creates a verification session authorized by the KYC admin token.
func (c *KYCClient) OpenSession(ctx context.Context, kycAdminToken string) (*interfaces.VerificationSession, error) {
	const op = "kyc.open_session"

	var resp struct {
		Data struct {
			SessionID string `json:"sessionId"`
		} `json:"data"`
	}
	err := c.do(ctx, call{
		kind:    interfaces.ErrSessionInit,
		op:      op,
		path:    "/api/v2/session",
		headers: map[string]string{"x-kyc-access-token": kycAdminToken},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Data.SessionID == "" {
		return nil, missing(interfaces.ErrSessionInit, op, http.StatusOK, "data.sessionId")
	}
	return &interfaces.VerificationSession{SessionID: resp.Data.SessionID}, nil
}

// Exchange trades a signed claim assertion for a session-bound user token.
func (c *KYCClient) Exchange(ctx context.Context, assertion, kycAdminToken, ssiAdminToken, sessionID string) (string, error) {
	const op = "kyc.exchange"

	var resp struct {
		Data struct {
			UserAccessToken string `json:"kycServiceUserAccessToken"`
		} `json:"data"`
	}
	err := c.do(ctx, call{
		kind: interfaces.ErrExchange,
		op:   op,
		path: "/api/v2/auth/exchange",
		headers: map[string]string{
			"x-ssi-access-token": ssiAdminToken,
			"x-kyc-access-token": kycAdminToken,
			"Authorization":      bearer(assertion),
		},
		body: map[string]string{
			"provider":  "client_auth",
			"sessionId": sessionID,
		},
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.Data.UserAccessToken == "" {
		return "", missing(interfaces.ErrExchange, op, http.StatusOK, "data.kycServiceUserAccessToken")
	}
	return resp.Data.UserAccessToken, nil
}
