package config

import (
	"testing"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIssuerDID = "did:hid:z6Mkih2GSH8hMhFXGXw387cK76v7V4PUhFUu8TNWUkXsEAGu"

func validConfig() Config {
	cfg := Default()
	cfg.KYCAPISecret = "kyc-secret"
	cfg.SSIAPISecret = "ssi-secret"
	cfg.Issuer = interfaces.IssuerIdentity{DID: testIssuerDID, VerificationMethodID: testIssuerDID + "#key-1"}
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing secret", mutate: func(c *Config) { c.SSIAPISecret = "" }, wantErr: "SSI API secret"},
		{name: "bad url", mutate: func(c *Config) { c.KYCBaseURL = "ftp://kyc" }, wantErr: "KYC base URL"},
		{name: "url without host", mutate: func(c *Config) { c.DashboardBaseURL = "https://" }, wantErr: "missing host"},
		{name: "foreign verification method", mutate: func(c *Config) { c.Issuer.VerificationMethodID = "did:hid:other#key-1" }, wantErr: "does not belong"},
		{name: "issuer not a DID", mutate: func(c *Config) { c.Issuer.DID = "issuer" }, wantErr: "invalid DID"},
		{name: "issuer key not ed25519", mutate: func(c *Config) {
			c.Issuer = interfaces.IssuerIdentity{DID: "did:hid:zQ3s", VerificationMethodID: "did:hid:zQ3s#key-1"}
		}, wantErr: "invalid DID"},
		{name: "bad store", mutate: func(c *Config) { c.CredentialStore = "mem://,ftp://x" }, wantErr: "invalid credential store URI"},
		{name: "zero buffer", mutate: func(c *Config) { c.ExpiryBuffer = 0 }, wantErr: "expiry buffer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := Default()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KYC API secret")
	assert.Contains(t, err.Error(), "SSI API secret")
	assert.Contains(t, err.Error(), "issuer DID and verification method are required")
}

func TestValidateIssuer_NonKeyDID(t *testing.T) {
	// Identifiers that are not multibase keys are only checked for syntax
	err := ValidateIssuer(interfaces.IssuerIdentity{DID: "did:web:example.com", VerificationMethodID: "did:web:example.com#owner"})
	assert.NoError(t, err)
}
