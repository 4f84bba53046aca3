// Package cryptoutils provides the token, DID and sealing helpers used by the
// KYC onboarding backend.
//
// None of the functions here verify signatures. Admin tokens are issued by
// the identity providers and only their advertised expiry is inspected so
// the credential cache can decide when to renew them.
//
// # Key Functions
//
// # ExpiresAt / ExpiryMillis - Read the exp claim of a compact JWS without verification
//
// # ParseDID / Ed25519KeyFromDID - Validate issuer DIDs carrying a multibase Ed25519 key
//
// # Seal / Open - AES-GCM encryption of the persisted credential record
//
// # Sealing Format
//
// The sealed record follows this binary format:
//
//	[nonce (12 bytes)][ciphertext]
//
// Where the key is derived from an operator passphrase with Argon2id
// (DeriveSealingKey).
package cryptoutils
