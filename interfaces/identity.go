package interfaces

import (
	"context"
	"errors"
	"strings"
)

// IssuerIdentity is the fixed identity claim assertions are issued on behalf of.
type IssuerIdentity struct {
	DID                  string `json:"did"`
	VerificationMethodID string `json:"verificationmethodId"`
}

// UserClaims are the attributes asserted about the user being onboarded.
type UserClaims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email"`
	UserDID string `json:"userDid"`
}

var (
	// ErrMissingEmail is returned when claims carry no email.
	ErrMissingEmail = errors.New("email is required")
	// ErrMissingUserDID is returned when claims carry no user DID.
	ErrMissingUserDID = errors.New("userDid is required")
)

// Validate checks the mandatory claim fields.
func (c UserClaims) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(c.UserDID) == "" {
		return ErrMissingUserDID
	}
	return nil
}

// VerificationSession is a KYC session opened for a single handshake attempt.
type VerificationSession struct {
	SessionID string `json:"sessionId"`
}

// UserDID is a DID registered for a user together with its Ed25519 verification method.
type UserDID struct {
	DID                  string `json:"did"`
	VerificationMethodID string `json:"verificationMethodId"`
}

// IdentitySessionClient talks to the KYC provider.
type IdentitySessionClient interface {
	// OpenSession creates a new verification session.
	OpenSession(ctx context.Context, kycAdminToken string) (*VerificationSession, error)

	// Exchange trades a signed claim assertion for a session-bound user access token.
	Exchange(ctx context.Context, assertion, kycAdminToken, ssiAdminToken, sessionID string) (string, error)
}

// ClaimSigner obtains DID-signed claim assertions from the SSI provider.
type ClaimSigner interface {
	Sign(ctx context.Context, claims UserClaims, ssiAdminToken string) (string, error)
}

// DIDRegistrar creates user DIDs on the SSI provider.
type DIDRegistrar interface {
	CreateDID(ctx context.Context, namespace, ssiAdminToken string) (*UserDID, error)
}
