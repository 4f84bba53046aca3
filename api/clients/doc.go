/*
Package clients provides HTTP clients for the identity providers used during
onboarding.

# Client Types

  - DashboardClient - issues KYC and SSI admin tokens from API secrets
  - KYCClient - opens verification sessions and exchanges signed assertions
    for user access tokens
  - SSIClient - signs claim assertions with the issuer DID and registers
    user DIDs

All clients share one pooled *http.Client (see NewHTTPClient) and tag each
request with a fresh X-Request-Id for correlation with upstream logs.

# Errors

Every failure is an *interfaces.UpstreamError whose Kind is one of the
interfaces sentinels, so callers can branch with errors.Is:

	_, err := kyc.OpenSession(ctx, token)
	if errors.Is(err, interfaces.ErrSessionInit) {
		// upstream status and body are on the *UpstreamError
	}

A 2xx response that lacks the expected field is treated as a failure of the
same kind.

# Testing

MockIssuer, MockSessionClient, MockClaimSigner and MockDIDRegistrar are
testify mocks of the collaborator interfaces.
*/
package clients
