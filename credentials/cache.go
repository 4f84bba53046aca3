package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ruteri/kyc-onboarding-backend/cryptoutils"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/ruteri/kyc-onboarding-backend/metrics"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultExpiryBuffer is how long before expiry a token is considered stale.
const DefaultExpiryBuffer = 60 * time.Second

// NeedsRefresh decides whether pair must be replaced at now. A pair needs
// refreshing when it is missing, incomplete, or either token expires at or
// before now+buffer. Tokens whose expiry cannot be read count as expired.
func NeedsRefresh(pair *interfaces.AdminCredentialPair, now time.Time, buffer time.Duration) bool {
	if !pair.Complete() {
		return true
	}

	deadline := now.Add(buffer).UnixMilli()
	return cryptoutils.ExpiryMillis(pair.KYCAdminToken) <= deadline ||
		cryptoutils.ExpiryMillis(pair.SSIAdminToken) <= deadline
}

// APISecrets are the application secrets exchanged for admin tokens.
type APISecrets struct {
	KYC string
	SSI string
}

func (s APISecrets) forScope(scope interfaces.Scope) string {
	if scope == interfaces.ScopeKYC {
		return s.KYC
	}
	return s.SSI
}

type CacheConfig struct {
	Issuer  interfaces.AdminCredentialIssuer
	Store   interfaces.CredentialStore
	Secrets APISecrets

	// ExpiryBuffer defaults to DefaultExpiryBuffer.
	ExpiryBuffer time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
	Log *slog.Logger
}

// Stats is a snapshot of cache activity since start.
type Stats struct {
	Hits            int64
	Refreshes       int64
	RefreshFailures int64
	PersistFailures int64
}

// Cache hands out an admin credential pair that stays valid for at least the
// expiry buffer, refreshing and persisting it when needed.
type Cache struct {
	issuer  interfaces.AdminCredentialIssuer
	store   interfaces.CredentialStore
	secrets APISecrets
	buffer  time.Duration
	now     func() time.Time
	log     *slog.Logger

	refreshGroup singleflight.Group

	hits            atomic.Int64
	refreshes       atomic.Int64
	refreshFailures atomic.Int64
	persistFailures atomic.Int64
}

var _ interfaces.AdminCredentialProvider = (*Cache)(nil)

func NewCache(cfg CacheConfig) *Cache {
	c := &Cache{
		issuer:  cfg.Issuer,
		store:   cfg.Store,
		secrets: cfg.Secrets,
		buffer:  cfg.ExpiryBuffer,
		now:     cfg.Now,
		log:     cfg.Log,
	}
	if c.buffer <= 0 {
		c.buffer = DefaultExpiryBuffer
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	return c
}

// GetValidPair returns the persisted pair when it is still fresh, without
// touching the network. Otherwise both tokens are issued concurrently, the new
// pair is persisted on a best-effort basis and returned. If either issuance
// fails nothing is persisted and the error matches interfaces.ErrUpstreamAuth.
//
// Concurrent callers in one process share a single in-flight refresh. A
// caller whose ctx ends stops waiting, but the refresh continues for the rest.
func (c *Cache) GetValidPair(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	if pair := c.loadFresh(ctx); pair != nil {
		return pair, nil
	}

	// The shared refresh outlives any single caller; the HTTP client timeout
	// bounds it.
	refreshCtx := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan("refresh", func() (interface{}, error) {
		// A refresh that finished between our load and this flight already
		// persisted a fresh pair.
		if pair := c.loadFresh(refreshCtx); pair != nil {
			return pair, nil
		}
		return c.refresh(refreshCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.log.Debug("Joined in-flight admin credential refresh")
		}
		out := *res.Val.(*interfaces.AdminCredentialPair)
		return &out, nil
	}
}

// Stats returns counters for monitoring.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:            c.hits.Load(),
		Refreshes:       c.refreshes.Load(),
		RefreshFailures: c.refreshFailures.Load(),
		PersistFailures: c.persistFailures.Load(),
	}
}

// loadFresh returns the persisted pair if it passes the buffer check. Load
// failures of any kind are a miss.
func (c *Cache) loadFresh(ctx context.Context) *interfaces.AdminCredentialPair {
	pair, err := c.store.Load(ctx)
	if err != nil {
		var corrupt *interfaces.CacheCorruptError
		switch {
		case errors.Is(err, interfaces.ErrCredentialsNotFound):
			c.log.Debug("No persisted admin credentials")
		case errors.As(err, &corrupt):
			c.log.Warn("Ignoring corrupt admin credential record",
				slog.String("location", corrupt.Location),
				"err", corrupt.Err)
		default:
			c.log.Warn("Failed to load admin credentials", "err", err)
		}
		return nil
	}

	if NeedsRefresh(pair, c.now(), c.buffer) {
		return nil
	}

	c.hits.Inc()
	metrics.RecordCacheHit()
	return pair
}

func (c *Cache) refresh(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	start := time.Now()

	fresh, err := c.issuePair(ctx)
	if err == nil && NeedsRefresh(fresh, c.now(), c.buffer) {
		err = &interfaces.UpstreamError{
			Kind: interfaces.ErrUpstreamAuth,
			Op:   "admin_credentials.refresh",
			Err:  fmt.Errorf("issued tokens expire within %s", c.buffer),
		}
	}
	metrics.RecordRefresh(err)
	if err != nil {
		c.refreshFailures.Inc()
		c.log.Error("Admin credential refresh failed", "err", err)
		return nil, err
	}
	c.refreshes.Inc()

	if err := c.store.Save(ctx, fresh); err != nil {
		c.persistFailures.Inc()
		c.log.Warn("Failed to persist admin credentials",
			slog.String("store", c.store.Name()),
			"err", err)
	}

	c.log.Info("Refreshed admin credentials",
		slog.Time("kyc_expires_at", cryptoutils.ExpiresAt(fresh.KYCAdminToken)),
		slog.Time("ssi_expires_at", cryptoutils.ExpiresAt(fresh.SSIAdminToken)),
		slog.Duration("duration", time.Since(start)))
	return fresh, nil
}

// issuePair issues both scopes concurrently. Either failure fails the pair.
func (c *Cache) issuePair(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	var pair interfaces.AdminCredentialPair

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		token, err := c.issue(gctx, interfaces.ScopeKYC)
		pair.KYCAdminToken = token
		return err
	})
	g.Go(func() error {
		token, err := c.issue(gctx, interfaces.ScopeSSI)
		pair.SSIAdminToken = token
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &pair, nil
}

func (c *Cache) issue(ctx context.Context, scope interfaces.Scope) (string, error) {
	token, err := c.issuer.Issue(ctx, c.secrets.forScope(scope), scope)
	if err != nil {
		if errors.Is(err, interfaces.ErrUpstreamAuth) {
			return "", err
		}
		return "", &interfaces.UpstreamError{Kind: interfaces.ErrUpstreamAuth, Op: "issue." + scope.String(), Err: err}
	}
	if token == "" {
		return "", &interfaces.UpstreamError{
			Kind: interfaces.ErrUpstreamAuth,
			Op:   "issue." + scope.String(),
			Err:  errors.New("empty token"),
		}
	}
	return token, nil
}
