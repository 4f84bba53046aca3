// Package credentials keeps the application's KYC and SSI admin tokens valid.
//
// Cache.GetValidPair is the only entry point the rest of the service needs.
// It reads the persisted pair, decides with NeedsRefresh whether it is still
// usable for at least the expiry buffer, and otherwise issues both tokens
// concurrently and persists the new pair. Token expiry is read from the
// unverified exp claim.
package credentials
