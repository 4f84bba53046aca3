package interfaces

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// CredentialStoreLocation represents URI for a credential store.
type CredentialStoreLocation struct {
	Raw    string     // Original URI
	Scheme string     // Protocol
	Host   string     // Hostname
	Path   string     // Resource path
	Query  url.Values // Query parameters
	Auth   *url.Userinfo
}

// NewCredentialStoreLocation creates a new store location from a URI string with validation.
func NewCredentialStoreLocation(uri string) (CredentialStoreLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return CredentialStoreLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch parsed.Scheme {
	case "file", "mem", "s3", "vault", "redis":
		// Valid scheme
	default:
		return CredentialStoreLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, parsed.Scheme)
	}

	return CredentialStoreLocation{
		Raw:    uri,
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
		Auth:   parsed.User,
	}, nil
}

// String returns the original URI string.
func (loc CredentialStoreLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc CredentialStoreLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

// GetParamBool returns a boolean query parameter value.
func (loc CredentialStoreLocation) GetParamBool(name string) bool {
	value := loc.Query.Get(name)
	return value == "true" || value == "1" || value == "yes"
}

var (
	// ErrCredentialsNotFound is returned when no credential record has been persisted yet.
	ErrCredentialsNotFound = errors.New("credential record not found")

	// ErrBackendUnavailable is returned when a store is not accessible.
	// This could be due to network issues, authentication failures, or service outages.
	ErrBackendUnavailable = errors.New("credential store unavailable")

	// ErrInvalidLocationURI is returned when a store location URI is malformed or unsupported.
	// URIs must follow the format: [scheme]://[auth@]host[:port][/path][?params]
	ErrInvalidLocationURI = errors.New("invalid credential store URI")
)

// CredentialStore persists the singleton admin credential record.
type CredentialStore interface {
	// Load returns the persisted pair, ErrCredentialsNotFound when there is
	// none, or a *CacheCorruptError when the record cannot be decoded.
	Load(ctx context.Context) (*AdminCredentialPair, error)

	// Save replaces the persisted pair. Readers never observe a partial write.
	Save(ctx context.Context, pair *AdminCredentialPair) error

	// Available checks if the store is accessible.
	Available(ctx context.Context) bool

	// Name returns identifier for logging.
	Name() string

	// LocationURI returns URI identifying this store.
	LocationURI() string
}

// CredentialStoreFactory creates credential stores.
type CredentialStoreFactory interface {
	// StoreFor creates a store from a location.
	// Supports file://, mem://, s3://, vault://, redis://
	StoreFor(location CredentialStoreLocation) (CredentialStore, error)

	// CreateMultiStore creates a store that falls back across locations.
	CreateMultiStore(locations []CredentialStoreLocation) (CredentialStore, error)
}
