package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/vault/api"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

const vaultRecordKey = "record"

// VaultStore keeps the credential record in a HashiCorp Vault KV v2 secret.
// Each write creates a new secret version, so readers see whole records.
type VaultStore struct {
	client      *api.Client
	mountPath   string
	secretPath  string
	codec       RecordCodec
	log         *slog.Logger
	locationURI string
}

// NewVaultStore creates a Vault store authenticated with a Vault token.
//
// Parameters:
//   - address: Vault server address (e.g. https://vault.example.com:8200)
//   - mountPath: KV v2 mount (e.g. "secret")
//   - secretPath: secret path within the mount (e.g. "kyc/admin-credentials")
//   - token: Vault token; falls back to VAULT_TOKEN when empty
func NewVaultStore(address, mountPath, secretPath, token string, codec RecordCodec, log *slog.Logger) (*VaultStore, error) {
	config := api.DefaultConfig()
	config.Address = address
	config.HttpClient = cleanhttp.DefaultPooledClient()
	config.HttpClient.Timeout = 30 * time.Second

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Vault client: %w", err)
	}
	if token != "" {
		client.SetToken(token)
	}

	mountPath = strings.Trim(mountPath, "/")
	secretPath = strings.Trim(secretPath, "/")
	if mountPath == "" || secretPath == "" {
		return nil, errors.New("vault store requires mount and secret path")
	}
	if codec == nil {
		codec = JSONCodec{}
	}

	return &VaultStore{
		client:      client,
		mountPath:   mountPath,
		secretPath:  secretPath,
		codec:       codec,
		log:         log,
		locationURI: fmt.Sprintf("vault://%s/%s/%s", strings.TrimPrefix(strings.TrimPrefix(address, "https://"), "http://"), mountPath, secretPath),
	}, nil
}

// Load reads the latest version of the record secret.
func (s *VaultStore) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	secret, err := s.client.KVv2(s.mountPath).Get(ctx, s.secretPath)
	if errors.Is(err, api.ErrSecretNotFound) {
		return nil, interfaces.ErrCredentialsNotFound
	}
	if err != nil {
		s.log.Error("Failed to read credential record from Vault",
			slog.String("mount", s.mountPath),
			slog.String("path", s.secretPath),
			"err", err)
		return nil, fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	content, ok := secret.Data[vaultRecordKey].(string)
	if !ok {
		return nil, &interfaces.CacheCorruptError{
			Location: s.locationURI,
			Err:      fmt.Errorf("secret has no string %q field", vaultRecordKey),
		}
	}

	pair, err := s.codec.Decode([]byte(content))
	if err != nil {
		return nil, &interfaces.CacheCorruptError{Location: s.locationURI, Err: err}
	}
	return pair, nil
}

// Save writes a new version of the record secret.
func (s *VaultStore) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	data, err := s.codec.Encode(pair)
	if err != nil {
		return fmt.Errorf("failed to encode credential record: %w", err)
	}

	_, err = s.client.KVv2(s.mountPath).Put(ctx, s.secretPath, map[string]interface{}{
		vaultRecordKey: string(data),
	})
	if err != nil {
		s.log.Error("Failed to write credential record to Vault",
			slog.String("mount", s.mountPath),
			slog.String("path", s.secretPath),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrBackendUnavailable, err)
	}

	s.log.Info("Stored credential record in Vault", slog.String("path", s.secretPath))
	return nil
}

// Available checks that Vault is initialized and unsealed.
func (s *VaultStore) Available(ctx context.Context) bool {
	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health, err := s.client.Sys().HealthWithContext(healthCtx)
	if err != nil {
		s.log.Debug("Vault health check failed", "err", err)
		return false
	}

	if !health.Initialized || health.Sealed {
		s.log.Debug("Vault is not available",
			slog.Bool("initialized", health.Initialized),
			slog.Bool("sealed", health.Sealed))
		return false
	}
	return true
}

func (s *VaultStore) Name() string {
	return fmt.Sprintf("vault-%s-%s", s.mountPath, s.secretPath)
}

func (s *VaultStore) LocationURI() string {
	return s.locationURI
}
