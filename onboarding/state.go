package onboarding

import (
	"fmt"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// Stage is a position in the onboarding handshake.
type Stage int

const (
	StageStart Stage = iota
	StageAdminReady
	StageSessionOpen
	StageAssertionSigned
	StageExchanged
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageAdminReady:
		return "admin_ready"
	case StageSessionOpen:
		return "session_open"
	case StageAssertionSigned:
		return "assertion_signed"
	case StageExchanged:
		return "exchanged"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Terminal reports whether no further step can run from s.
func (s Stage) Terminal() bool {
	return s == StageExchanged || s == StageFailed
}

// HandshakeState accumulates every value produced along the handshake, so
// each step reads its inputs from the state rather than from its predecessor.
type HandshakeState struct {
	Stage     Stage
	Claims    interfaces.UserClaims
	Namespace string

	AdminPair *interfaces.AdminCredentialPair
	Session   *interfaces.VerificationSession
	UserDID   interfaces.UserDID
	Assertion string
	UserToken string
}

// StageError is returned when a handshake step fails. Stage is the last stage
// the handshake reached and Step names the operation that failed.
type StageError struct {
	Stage Stage
	Step  string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("onboarding failed after %s during %s: %v", e.Stage, e.Step, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
