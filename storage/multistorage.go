package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// MultiStore implements interfaces.CredentialStore over several stores.
// Loads fall back in order; saves go to every available store.
type MultiStore struct {
	stores []interfaces.CredentialStore
	log    *slog.Logger
}

func NewMultiStore(stores []interfaces.CredentialStore, logger *slog.Logger) *MultiStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MultiStore{
		stores: stores,
		log:    logger,
	}
}

// Load returns the record from the first store that has a readable one.
// When every store misses the result matches ErrCredentialsNotFound.
func (m *MultiStore) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	start := time.Now()
	var errs []error

	for _, store := range m.stores {
		if !store.Available(ctx) {
			m.log.Debug("Credential store unavailable", slog.String("store_name", store.Name()))
			errs = append(errs, fmt.Errorf("%s: %w", store.Name(), interfaces.ErrBackendUnavailable))
			continue
		}

		pair, err := store.Load(ctx)
		if err == nil {
			m.log.Debug("Loaded credential record",
				slog.String("store_name", store.Name()),
				slog.Duration("duration", time.Since(start)))
			return pair, nil
		}

		errs = append(errs, fmt.Errorf("%s: %w", store.Name(), err))
		m.log.Debug("Failed to load from credential store",
			slog.String("store_name", store.Name()),
			"err", err)
	}

	if len(errs) == 0 {
		return nil, interfaces.ErrCredentialsNotFound
	}
	return nil, fmt.Errorf("no credential store had a usable record: %w", errors.Join(errs...))
}

// Save writes the record to all available stores and succeeds if any write did.
func (m *MultiStore) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	start := time.Now()
	var success bool
	var errs []error

	for _, store := range m.stores {
		if !store.Available(ctx) {
			m.log.Debug("Credential store unavailable", slog.String("store_name", store.Name()))
			continue
		}

		if err := store.Save(ctx, pair); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", store.Name(), err))
			m.log.Warn("Failed to save to credential store",
				slog.String("store_name", store.Name()),
				"err", err)
			continue
		}
		success = true
	}

	if !success {
		m.log.Error("All credential stores failed to save",
			slog.Int("failed_stores", len(errs)),
			slog.Duration("duration", time.Since(start)))
		if len(errs) == 0 {
			return interfaces.ErrBackendUnavailable
		}
		return fmt.Errorf("all credential stores failed to save: %w", errors.Join(errs...))
	}

	return nil
}

// Available checks if any store is available.
func (m *MultiStore) Available(ctx context.Context) bool {
	for _, store := range m.stores {
		if store.Available(ctx) {
			return true
		}
	}
	return false
}

func (m *MultiStore) Name() string {
	return "multi-store"
}

func (m *MultiStore) LocationURI() string {
	var locations []string
	for _, store := range m.stores {
		locations = append(locations, store.LocationURI())
	}

	return "multi:[" + strings.Join(locations, ",") + "]"
}
