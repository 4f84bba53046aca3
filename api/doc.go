/*
Package api holds the wire types and shared server configuration of the
onboarding service.

Subpackages:

  - clients - HTTP clients for the dashboard, KYC and SSI providers
  - onboardinghandler - the caller-facing onboarding endpoint and its client

OnboardingResponse keeps the field names of the legacy Node service so
existing front ends keep working:

	{
	  "kycAdminToken": "...",
	  "ssiAdminToken": "...",
	  "userBearerToken": "...",
	  "issuerDid": "did:hid:...",
	  "issuerVerificationMethodId": "did:hid:...#key-1",
	  "sessionId": "...",
	  "userDid": "did:hid:...",
	  "userVerificationMethodId": "did:hid:...#key-1"
	}

Failures are reported as 400 with {"error": "..."}.
*/
package api
