package clients

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

const (
	// AssertionTTLSeconds is the lifetime requested for signed claim assertions.
	AssertionTTLSeconds = 3600

	ed25519VerificationKeyType = "Ed25519VerificationKey2020"
)

// SSIClient signs claim assertions and registers DIDs with the SSI provider.
type SSIClient struct {
	upstream
	issuer   interfaces.IssuerIdentity
	audience string
}

var (
	_ interfaces.ClaimSigner  = (*SSIClient)(nil)
	_ interfaces.DIDRegistrar = (*SSIClient)(nil)
)

// NewSSIClient creates a client that signs on behalf of issuer. audience is
// the intended recipient of signed assertions, normally the KYC domain.
func NewSSIClient(baseURL string, issuer interfaces.IssuerIdentity, audience string, httpClient *http.Client, log *slog.Logger) *SSIClient {
	return &SSIClient{
		upstream: newUpstream(baseURL, httpClient, log),
		issuer:   issuer,
		audience: audience,
	}
}

// Sign has the issuer DID sign the user's claims.
func (c *SSIClient) Sign(ctx context.Context, claims interfaces.UserClaims, ssiAdminToken string) (string, error) {
	const op = "ssi.sign"

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.do(ctx, call{
		kind:    interfaces.ErrClaimSigning,
		op:      op,
		path:    "/api/v1/did/auth/issue-jwt",
		headers: map[string]string{"Authorization": bearer(ssiAdminToken)},
		body: map[string]any{
			"issuer":     c.issuer,
			"audience":   c.audience,
			"claims":     claims,
			"ttlSeconds": AssertionTTLSeconds,
		},
	}, &resp)
	if err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", missing(interfaces.ErrClaimSigning, op, http.StatusOK, "accessToken")
	}
	return resp.AccessToken, nil
}

type verificationMethod struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// CreateDID registers a new user DID and returns it with its Ed25519
// verification method.
func (c *SSIClient) CreateDID(ctx context.Context, namespace, ssiAdminToken string) (*interfaces.UserDID, error) {
	const op = "ssi.create_did"

	var resp struct {
		DID      string `json:"did"`
		Metadata struct {
			DIDDocument struct {
				VerificationMethods []verificationMethod `json:"verificationMethods"`
				VerificationMethod  []verificationMethod `json:"verificationMethod"`
			} `json:"didDocument"`
		} `json:"metadata"`
	}
	err := c.do(ctx, call{
		kind:    interfaces.ErrDidCreation,
		op:      op,
		path:    "/api/v1/did/create",
		headers: map[string]string{"Authorization": bearer(ssiAdminToken)},
		body:    map[string]string{"namespace": namespace},
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.DID == "" {
		return nil, missing(interfaces.ErrDidCreation, op, http.StatusOK, "did")
	}

	methods := append(resp.Metadata.DIDDocument.VerificationMethods, resp.Metadata.DIDDocument.VerificationMethod...)
	for _, m := range methods {
		if m.Type == ed25519VerificationKeyType && m.ID != "" {
			return &interfaces.UserDID{DID: resp.DID, VerificationMethodID: m.ID}, nil
		}
	}
	return nil, missing(interfaces.ErrDidCreation, op, http.StatusOK, ed25519VerificationKeyType+" verification method")
}
