package onboardinghandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ruteri/kyc-onboarding-backend/api"
	"github.com/ruteri/kyc-onboarding-backend/api/clients"
)

// Client calls a remote onboarding service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL
// (e.g. "http://localhost:8080"). A nil httpClient uses a pooled default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = clients.NewHTTPClient(clients.DefaultTimeout)
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Onboard runs the onboarding handshake remotely.
func (c *Client) Onboard(ctx context.Context, req api.OnboardingRequest) (*api.OnboardingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/onboarding", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not initialize request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("could not request onboarding: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read onboarding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp api.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("onboarding failed with code %d: %s", resp.StatusCode, errResp.Error)
		}
		return nil, fmt.Errorf("onboarding failed with code %d: %s", resp.StatusCode, string(respBody))
	}

	var out api.OnboardingResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("could not parse onboarding response: %w", err)
	}
	return &out, nil
}
