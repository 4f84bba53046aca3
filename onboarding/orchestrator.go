package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/ruteri/kyc-onboarding-backend/metrics"
)

// ErrMissingCollaborator is returned when a step needs a collaborator that was not configured.
var ErrMissingCollaborator = errors.New("onboarding collaborator not configured")

// Result is everything a caller needs to continue the KYC flow for a user.
type Result struct {
	AdminPair *interfaces.AdminCredentialPair
	Session   *interfaces.VerificationSession
	UserToken string
	Issuer    interfaces.IssuerIdentity
	UserDID   interfaces.UserDID
}

// OnboardingRequest is the caller-facing onboarding input. UserDID is
// optional; when empty a DID is registered in Namespace.
type OnboardingRequest struct {
	Name      string
	Email     string
	UserDID   string
	Namespace string
}

type Config struct {
	Credentials interfaces.AdminCredentialProvider
	Sessions    interfaces.IdentitySessionClient
	Signer      interfaces.ClaimSigner
	// Registrar is only needed by Onboard when no user DID is supplied.
	Registrar interfaces.DIDRegistrar
	Issuer    interfaces.IssuerIdentity
	Log       *slog.Logger
}

// Orchestrator runs the onboarding handshake against the identity providers.
// It holds no per-request state and is safe for concurrent use.
type Orchestrator struct {
	credentials interfaces.AdminCredentialProvider
	sessions    interfaces.IdentitySessionClient
	signer      interfaces.ClaimSigner
	registrar   interfaces.DIDRegistrar
	issuer      interfaces.IssuerIdentity
	log         *slog.Logger
}

func New(cfg Config) *Orchestrator {
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		credentials: cfg.Credentials,
		sessions:    cfg.Sessions,
		signer:      cfg.Signer,
		registrar:   cfg.Registrar,
		issuer:      cfg.Issuer,
		log:         log,
	}
}

// step advances the handshake to next when run succeeds.
type step struct {
	name string
	next Stage
	run  func(context.Context, *HandshakeState) error
}

// CompleteOnboarding runs admin acquisition, session open, claim signing and
// exchange in that order. claims must carry an email and a user DID. Any
// failure aborts the remaining steps and is returned as a *StageError.
func (o *Orchestrator) CompleteOnboarding(ctx context.Context, claims interfaces.UserClaims) (*Result, error) {
	if err := claims.Validate(); err != nil {
		return nil, &StageError{Stage: StageStart, Step: "validate", Err: err}
	}

	state := &HandshakeState{Stage: StageStart, Claims: claims}
	state.UserDID.DID = claims.UserDID

	return o.run(ctx, state, []step{
		{name: "acquire_admin_credentials", next: StageAdminReady, run: o.acquireAdmin},
		{name: "open_session", next: StageSessionOpen, run: o.openSession},
		{name: "sign_claims", next: StageAssertionSigned, run: o.signClaims},
		{name: "exchange", next: StageExchanged, run: o.exchange},
	})
}

// Onboard is CompleteOnboarding for callers that may not have a DID yet. The
// DID is registered once the session is open and before claims are signed.
func (o *Orchestrator) Onboard(ctx context.Context, req OnboardingRequest) (*Result, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, &StageError{Stage: StageStart, Step: "validate", Err: interfaces.ErrMissingEmail}
	}

	state := &HandshakeState{
		Stage:     StageStart,
		Claims:    interfaces.UserClaims{Name: req.Name, Email: req.Email, UserDID: req.UserDID},
		Namespace: req.Namespace,
	}
	state.UserDID.DID = req.UserDID

	return o.run(ctx, state, []step{
		{name: "acquire_admin_credentials", next: StageAdminReady, run: o.acquireAdmin},
		{name: "open_session", next: StageSessionOpen, run: o.openSession},
		{name: "create_did", next: StageSessionOpen, run: o.ensureUserDID},
		{name: "sign_claims", next: StageAssertionSigned, run: o.signClaims},
		{name: "exchange", next: StageExchanged, run: o.exchange},
	})
}

func (o *Orchestrator) run(ctx context.Context, state *HandshakeState, steps []step) (*Result, error) {
	start := time.Now()

	for _, s := range steps {
		if err := s.run(ctx, state); err != nil {
			reached := state.Stage
			state.Stage = StageFailed
			metrics.RecordHandshake(s.name, err)
			o.log.Warn("Onboarding handshake failed",
				slog.String("stage", reached.String()),
				slog.String("step", s.name),
				slog.Duration("duration", time.Since(start)),
				"err", err)
			return nil, &StageError{Stage: reached, Step: s.name, Err: err}
		}
		state.Stage = s.next
	}

	metrics.RecordHandshake(state.Stage.String(), nil)
	o.log.Info("Onboarding handshake completed",
		slog.String("session_id", state.Session.SessionID),
		slog.String("user_did", state.UserDID.DID),
		slog.Duration("duration", time.Since(start)))

	return &Result{
		AdminPair: state.AdminPair,
		Session:   state.Session,
		UserToken: state.UserToken,
		Issuer:    o.issuer,
		UserDID:   state.UserDID,
	}, nil
}

func (o *Orchestrator) acquireAdmin(ctx context.Context, state *HandshakeState) error {
	pair, err := o.credentials.GetValidPair(ctx)
	if err != nil {
		return err
	}
	state.AdminPair = pair
	return nil
}

func (o *Orchestrator) openSession(ctx context.Context, state *HandshakeState) error {
	session, err := o.sessions.OpenSession(ctx, state.AdminPair.KYCAdminToken)
	if err != nil {
		return err
	}
	state.Session = session
	return nil
}

func (o *Orchestrator) ensureUserDID(ctx context.Context, state *HandshakeState) error {
	if state.Claims.UserDID != "" {
		return nil
	}
	if o.registrar == nil {
		return fmt.Errorf("%w: did registrar", ErrMissingCollaborator)
	}

	did, err := o.registrar.CreateDID(ctx, state.Namespace, state.AdminPair.SSIAdminToken)
	if err != nil {
		return err
	}
	state.UserDID = *did
	state.Claims.UserDID = did.DID
	return nil
}

func (o *Orchestrator) signClaims(ctx context.Context, state *HandshakeState) error {
	assertion, err := o.signer.Sign(ctx, state.Claims, state.AdminPair.SSIAdminToken)
	if err != nil {
		return err
	}
	state.Assertion = assertion
	return nil
}

func (o *Orchestrator) exchange(ctx context.Context, state *HandshakeState) error {
	token, err := o.sessions.Exchange(ctx, state.Assertion, state.AdminPair.KYCAdminToken, state.AdminPair.SSIAdminToken, state.Session.SessionID)
	if err != nil {
		return err
	}
	state.UserToken = token
	return nil
}
