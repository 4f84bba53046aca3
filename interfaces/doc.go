// Package interfaces defines the core types and contracts of the KYC
// onboarding backend.
//
// It separates the contracts between components from their implementations
// so that the credential cache and the handshake orchestrator can be tested
// against mocks and wired against any storage or transport.
//
// # Credential Types
//
//   - Scope: which upstream service an admin token is issued for (KYC or SSI)
//   - AdminCredentialPair: the two admin tokens, always refreshed together
//   - IssuerIdentity: the fixed DID and verification method claims are issued for
//
// # Handshake Types
//
//   - UserClaims: attributes asserted about the user being onboarded
//   - VerificationSession: a KYC session scoped to one handshake attempt
//   - UserDID: a DID registered for the user, with its Ed25519 verification method
//
// # Storage Interfaces
//
//   - CredentialStore: loads and saves the singleton AdminCredentialPair record
//   - CredentialStoreFactory: creates stores from location URIs
//
// # Upstream Interfaces
//
//   - AdminCredentialIssuer: issues a raw admin token for a secret and scope
//   - IdentitySessionClient: opens KYC sessions and exchanges assertions for user tokens
//   - ClaimSigner: obtains DID-signed claim assertions from the SSI provider
//   - DIDRegistrar: creates user DIDs on the SSI provider
//   - AdminCredentialProvider: hands out a currently valid AdminCredentialPair
//
// # Error Types
//
// Upstream failures are reported as *UpstreamError values whose Kind is one of
// ErrUpstreamAuth, ErrSessionInit, ErrClaimSigning, ErrExchange or
// ErrDidCreation, so callers can match them with errors.Is while still seeing
// the upstream status code and body. An unreadable persisted record is a
// *CacheCorruptError; the credential cache treats it as a miss.
package interfaces
