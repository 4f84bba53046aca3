// Package storage persists the singleton admin credential record.
//
// Every store implements interfaces.CredentialStore: Load returns the last
// saved pair, interfaces.ErrCredentialsNotFound when nothing was saved, or an
// *interfaces.CacheCorruptError when the record cannot be decoded. Callers
// treat both as a cache miss. Save replaces the record whole.
//
// # Store URI Format
//
//	[scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//
//   - file:///var/lib/kyc/admin-credentials.json
//   - mem://
//   - s3://bucket/admin-credentials.json?region=eu-west-1
//   - vault://vault.example.com:8200/secret/kyc/admin-credentials
//   - redis://localhost:6379/0?key=kyc:admin-credentials
//
// Several URIs may be combined into a MultiStore, which reads from the first
// store holding a usable record and writes to all available ones.
//
// # Sealing
//
// The record holds bearer tokens. A SealedCodec encrypts it with AES-GCM
// under a key derived from an operator passphrase before it reaches any
// backend.
package storage
