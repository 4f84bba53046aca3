package interfaces

import (
	"context"
	"fmt"
)

// Scope selects which upstream service an admin token grants access to.
type Scope string

const (
	// ScopeKYC grants access to the KYC provider.
	ScopeKYC Scope = "access_service_kyc"
	// ScopeSSI grants access to the SSI provider.
	ScopeSSI Scope = "access_service_ssi"
)

// String returns the grant type sent upstream.
func (s Scope) String() string {
	return string(s)
}

// AdminCredentialPair holds the two application-scoped admin tokens.
// The pair is only ever replaced wholesale.
type AdminCredentialPair struct {
	KYCAdminToken string `json:"kycAdminToken"`
	SSIAdminToken string `json:"ssiAdminToken"`
}

// Complete reports whether both tokens are present.
func (p *AdminCredentialPair) Complete() bool {
	return p != nil && p.KYCAdminToken != "" && p.SSIAdminToken != ""
}

// Token returns the admin token for the given scope.
func (p *AdminCredentialPair) Token(scope Scope) (string, error) {
	switch scope {
	case ScopeKYC:
		return p.KYCAdminToken, nil
	case ScopeSSI:
		return p.SSIAdminToken, nil
	default:
		return "", fmt.Errorf("unknown scope %q", scope)
	}
}

// AdminCredentialIssuer calls the upstream token endpoint.
type AdminCredentialIssuer interface {
	// Issue returns a raw admin token for the secret and scope.
	Issue(ctx context.Context, apiSecret string, scope Scope) (string, error)
}

// AdminCredentialProvider hands out admin credentials that are valid for at
// least the provider's expiry buffer.
type AdminCredentialProvider interface {
	GetValidPair(ctx context.Context) (*AdminCredentialPair, error)
}
