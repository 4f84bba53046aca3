/*
Command kycctl is an operator tool for the KYC onboarding backend.

Commands:

	admin-tokens  print a valid admin credential pair, refreshing the credential store if needed
	onboard       run the onboarding handshake, locally or against --server
	create-did    register a new user DID
	expiry        decode the expiry of a JWT

It reads the same provider flags and environment variables as onboarding-server,
so it shares the server's credential store when pointed at the same location.
*/
package main
