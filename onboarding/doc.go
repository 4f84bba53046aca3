// Package onboarding runs the trust handshake that turns user claims into a
// session-bound KYC user access token.
//
// The handshake is a fixed pipeline:
//
//	start -> admin_ready -> session_open -> assertion_signed -> exchanged
//
// Every step reads from and writes to one HandshakeState, and a failure in
// any step moves the state to failed and aborts the rest. Nothing is rolled
// back; sessions and assertions expire upstream on their own. The returned
// *StageError records how far the handshake got and unwraps to the upstream
// error, so errors.Is(err, interfaces.ErrClaimSigning) and friends work.
//
// The user access token's own expiry is not tracked.
package onboarding
