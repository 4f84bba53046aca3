package storage

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// StoreFactory creates credential stores from location URIs.
type StoreFactory struct {
	log        *slog.Logger
	codec      RecordCodec
	vaultToken string
}

// NewStoreFactory creates a factory. A nil codec persists plain JSON.
// vaultToken authenticates vault:// stores.
func NewStoreFactory(logger *slog.Logger, codec RecordCodec, vaultToken string) *StoreFactory {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &StoreFactory{
		log:        logger,
		codec:      codec,
		vaultToken: vaultToken,
	}
}

// StoreFor creates a credential store from a location.
//
// Supported schemes:
//   - file:///var/lib/kyc/admin-credentials.json
//   - mem://
//   - s3://[ACCESS_KEY:SECRET_KEY@]bucket/key.json?region=us-west-2&endpoint=minio:9000
//   - vault://vault.example.com:8200/secret/kyc/admin-credentials?tls=false
//   - redis://[:password@]localhost:6379/0?key=kyc:admin-credentials
func (sf *StoreFactory) StoreFor(location interfaces.CredentialStoreLocation) (interfaces.CredentialStore, error) {
	switch strings.ToLower(location.Scheme) {
	case "file":
		return sf.createFileStore(location)
	case "mem":
		return NewMemoryStore(), nil
	case "s3":
		return sf.createS3Store(location)
	case "vault":
		return sf.createVaultStore(location)
	case "redis":
		return sf.createRedisStore(location)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidLocationURI, location.Scheme)
	}
}

// CreateMultiStore creates a fallback store from several locations.
// Locations that fail to build are logged and skipped.
func (sf *StoreFactory) CreateMultiStore(locations []interfaces.CredentialStoreLocation) (interfaces.CredentialStore, error) {
	stores := make([]interfaces.CredentialStore, 0, len(locations))

	for _, location := range locations {
		store, err := sf.StoreFor(location)
		if err != nil {
			sf.log.Warn("Failed to create credential store",
				"err", err,
				slog.String("location", location.String()))
			continue
		}
		stores = append(stores, store)
	}

	if len(stores) == 0 {
		return nil, fmt.Errorf("no valid credential stores created")
	}
	if len(stores) == 1 {
		return stores[0], nil
	}

	return NewMultiStore(stores, sf.log), nil
}

// ParseLocations splits a comma separated list of store URIs.
func ParseLocations(raw string) ([]interfaces.CredentialStoreLocation, error) {
	var locations []interfaces.CredentialStoreLocation
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		location, err := interfaces.NewCredentialStoreLocation(part)
		if err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no locations given", interfaces.ErrInvalidLocationURI)
	}
	return locations, nil
}

// createFileStore handles file:///absolute/path.json and file://./relative/path.json.
func (sf *StoreFactory) createFileStore(location interfaces.CredentialStoreLocation) (interfaces.CredentialStore, error) {
	sf.log.Debug("Creating file store", slog.String("uri", location.String()))

	path := location.Path
	if location.Host != "" {
		path = location.Host + "/" + strings.TrimPrefix(path, "/")
	}

	if path == "" {
		return nil, fmt.Errorf("empty path in file URI: %s", location.String())
	}

	return NewFileStore(path, sf.codec, sf.log)
}

func (sf *StoreFactory) createS3Store(location interfaces.CredentialStoreLocation) (interfaces.CredentialStore, error) {
	sf.log.Debug("Creating S3 store", slog.String("bucket", location.Host))

	key := strings.TrimPrefix(location.Path, "/")
	if key == "" {
		key = "admin-credentials.json"
	}

	region := location.GetParam("region")
	if region == "" {
		region = "us-east-1"
	}

	var accessKey, secretKey string
	if location.Auth != nil {
		accessKey = location.Auth.Username()
		secretKey, _ = location.Auth.Password()
	}

	return NewS3Store(location.Host, key, region, location.GetParam("endpoint"), accessKey, secretKey, sf.codec, sf.log)
}

func (sf *StoreFactory) createVaultStore(location interfaces.CredentialStoreLocation) (interfaces.CredentialStore, error) {
	sf.log.Debug("Creating Vault store", slog.String("host", location.Host))

	scheme := "https"
	if location.Query.Has("tls") && !location.GetParamBool("tls") {
		scheme = "http"
	}
	address := (&url.URL{Scheme: scheme, Host: location.Host}).String()

	mount, secretPath, ok := strings.Cut(strings.TrimPrefix(location.Path, "/"), "/")
	if !ok {
		return nil, fmt.Errorf("%w: vault URI needs /mount/path, got %q", interfaces.ErrInvalidLocationURI, location.Path)
	}

	token := sf.vaultToken
	if location.Auth != nil && location.Auth.Username() != "" {
		token = location.Auth.Username()
	}

	return NewVaultStore(address, mount, secretPath, token, sf.codec, sf.log)
}

// createRedisStore passes the URI to go-redis without the key parameter,
// which go-redis does not accept.
func (sf *StoreFactory) createRedisStore(location interfaces.CredentialStoreLocation) (interfaces.CredentialStore, error) {
	sf.log.Debug("Creating Redis store", slog.String("host", location.Host))

	query := url.Values{}
	for k, v := range location.Query {
		if k != "key" {
			query[k] = v
		}
	}
	redisURL := &url.URL{
		Scheme:   location.Scheme,
		User:     location.Auth,
		Host:     location.Host,
		Path:     location.Path,
		RawQuery: query.Encode(),
	}

	return NewRedisStore(redisURL.String(), location.GetParam("key"), sf.codec, sf.log)
}
