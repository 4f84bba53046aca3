/*
Command onboarding-server serves the KYC onboarding API.

It keeps a valid pair of admin tokens for the KYC and SSI services in a
persistent credential store and, per request, opens a verification session,
signs the user's claims with the issuer DID and exchanges them for a
user-scoped bearer token.

Usage:

	onboarding-server --kyc-api-secret ... --ssi-api-secret ... \
		--issuer-did did:hid:z6Mk... --issuer-verification-method-id did:hid:z6Mk...#key-1 \
		--credential-store file:///var/lib/kyc/admin-credentials.json

Every provider flag can also be set through its environment variable
(KYC_API_SECRET, SSI_API_SECRET, ISSUER_DID, CREDENTIAL_STORE, ...).

Endpoints:

	POST /api/onboarding                              {"name","email","userDid","namespace"}
	GET  /api/onboarding?email=...&userDid=...
	GET  /get-required-tokens-and-session-for-a-user  same as GET /api/onboarding
	GET  /livez, /readyz                              health
	GET  /metrics                                     on --metrics-addr
*/
package main
