// Package config holds the settings of the onboarding service and its CLI.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ruteri/kyc-onboarding-backend/cryptoutils"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

const (
	DefaultKYCBaseURL       = "https://api.cavach.hypersign.id"
	DefaultSSIBaseURL       = "https://api.entity.hypersign.id"
	DefaultDashboardBaseURL = "https://api.entity.dashboard.hypersign.id"
	DefaultAudience         = "https://api.cavach.hypersign.id"
	DefaultCredentialStore  = "file://./data/admin-credentials.json"
	DefaultExpiryBuffer     = 60 * time.Second
	DefaultUpstreamTimeout  = 30 * time.Second
)

// Config is the validated service configuration.
type Config struct {
	KYCAPISecret string
	SSIAPISecret string

	KYCBaseURL       string
	SSIBaseURL       string
	DashboardBaseURL string
	// Audience is the intended recipient of signed claim assertions.
	Audience string

	Issuer interfaces.IssuerIdentity

	// CredentialStore is a comma separated list of store URIs.
	CredentialStore string
	// CredentialStorePassphrase enables sealing of the persisted record when set.
	CredentialStorePassphrase string
	VaultToken                string

	ExpiryBuffer    time.Duration
	UpstreamTimeout time.Duration
}

// Default returns a config with every optional field set.
func Default() Config {
	return Config{
		KYCBaseURL:       DefaultKYCBaseURL,
		SSIBaseURL:       DefaultSSIBaseURL,
		DashboardBaseURL: DefaultDashboardBaseURL,
		Audience:         DefaultAudience,
		CredentialStore:  DefaultCredentialStore,
		ExpiryBuffer:     DefaultExpiryBuffer,
		UpstreamTimeout:  DefaultUpstreamTimeout,
	}
}

// Validate reports every problem with the config at once.
func (c *Config) Validate() error {
	var errs []error

	if c.KYCAPISecret == "" {
		errs = append(errs, errors.New("KYC API secret is required"))
	}
	if c.SSIAPISecret == "" {
		errs = append(errs, errors.New("SSI API secret is required"))
	}

	for name, raw := range map[string]string{
		"KYC base URL":       c.KYCBaseURL,
		"SSI base URL":       c.SSIBaseURL,
		"dashboard base URL": c.DashboardBaseURL,
	} {
		if err := validateBaseURL(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Audience == "" {
		errs = append(errs, errors.New("assertion audience is required"))
	}

	if err := ValidateIssuer(c.Issuer); err != nil {
		errs = append(errs, err)
	}

	if c.CredentialStore == "" {
		errs = append(errs, errors.New("credential store location is required"))
	}
	for _, raw := range strings.Split(c.CredentialStore, ",") {
		if raw = strings.TrimSpace(raw); raw == "" {
			continue
		}
		if _, err := interfaces.NewCredentialStoreLocation(raw); err != nil {
			errs = append(errs, err)
		}
	}

	if c.ExpiryBuffer <= 0 {
		errs = append(errs, errors.New("expiry buffer must be positive"))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("upstream timeout must be positive"))
	}

	return errors.Join(errs...)
}

// ValidateIssuer checks that the issuer DID is well formed and that the
// verification method belongs to it. DIDs with a multibase key identifier
// must carry an Ed25519 key.
func ValidateIssuer(issuer interfaces.IssuerIdentity) error {
	if issuer.DID == "" || issuer.VerificationMethodID == "" {
		return errors.New("issuer DID and verification method are required")
	}

	_, id, err := cryptoutils.ParseDID(issuer.DID)
	if err != nil {
		return fmt.Errorf("issuer: %w", err)
	}
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		id = id[i+1:]
	}
	if strings.HasPrefix(id, "z") {
		if _, err := cryptoutils.Ed25519KeyFromDID(issuer.DID); err != nil {
			return fmt.Errorf("issuer: %w", err)
		}
	}

	if !cryptoutils.VerificationMethodMatchesDID(issuer.VerificationMethodID, issuer.DID) {
		return fmt.Errorf("issuer verification method %q does not belong to %q", issuer.VerificationMethodID, issuer.DID)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
