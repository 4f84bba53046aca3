package interfaces

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamAuth is the kind of errors from admin token issuance.
	ErrUpstreamAuth = errors.New("admin token issuance failed")

	// ErrSessionInit is the kind of errors from opening a KYC session.
	ErrSessionInit = errors.New("kyc session initialization failed")

	// ErrClaimSigning is the kind of errors from claim assertion signing.
	ErrClaimSigning = errors.New("claim signing failed")

	// ErrExchange is the kind of errors from the assertion exchange.
	ErrExchange = errors.New("kyc token exchange failed")

	// ErrDidCreation is the kind of errors from user DID creation.
	ErrDidCreation = errors.New("did creation failed")
)

// UpstreamError describes a failed call to an identity provider.
// StatusCode is zero when the request never produced a response.
type UpstreamError struct {
	Kind       error
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" [%d]", e.StatusCode)
	}
	if e.Body != "" {
		msg += ": " + e.Body
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the transport cause.
func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// CacheCorruptError reports a persisted credential record that could not be decoded.
type CacheCorruptError struct {
	Location string
	Err      error
}

func (e *CacheCorruptError) Error() string {
	return fmt.Sprintf("corrupt credential record at %s: %v", e.Location, e.Err)
}

func (e *CacheCorruptError) Unwrap() error {
	return e.Err
}
