package storage

import (
	"context"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockCredentialStore implements interfaces.CredentialStore for testing.
type MockCredentialStore struct {
	mock.Mock
	StoreName string
}

func (m *MockCredentialStore) Load(ctx context.Context) (*interfaces.AdminCredentialPair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.AdminCredentialPair), args.Error(1)
}

func (m *MockCredentialStore) Save(ctx context.Context, pair *interfaces.AdminCredentialPair) error {
	args := m.Called(ctx, pair)
	return args.Error(0)
}

func (m *MockCredentialStore) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockCredentialStore) Name() string {
	if m.StoreName == "" {
		return "mock"
	}
	return m.StoreName
}

func (m *MockCredentialStore) LocationURI() string {
	return "mock://" + m.Name()
}
