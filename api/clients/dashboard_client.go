package clients

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// DashboardClient issues admin access tokens from the developer dashboard.
type DashboardClient struct {
	upstream
}

var _ interfaces.AdminCredentialIssuer = (*DashboardClient)(nil)

// NewDashboardClient creates a client for the dashboard at baseURL
// (e.g. "https://api.entity.dashboard.hypersign.id"). A nil httpClient uses
// a pooled client with DefaultTimeout.
func NewDashboardClient(baseURL string, httpClient *http.Client, log *slog.Logger) *DashboardClient {
	return &DashboardClient{upstream: newUpstream(baseURL, httpClient, log)}
}

// Issue exchanges an API secret for an admin token of the given scope.
func (c *DashboardClient) Issue(ctx context.Context, apiSecret string, scope interfaces.Scope) (string, error) {
	op := "dashboard.issue." + string(scope)

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	err := c.do(ctx, call{
		kind:    interfaces.ErrUpstreamAuth,
		op:      op,
		path:    "/api/v1/app/oauth?grant_type=" + url.QueryEscape(string(scope)),
		headers: map[string]string{"X-Api-Secret-Key": apiSecret},
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", missing(interfaces.ErrUpstreamAuth, op, http.StatusOK, "access_token")
	}
	return resp.AccessToken, nil
}
