package clients

import (
	"context"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/stretchr/testify/mock"
)

// MockIssuer implements interfaces.AdminCredentialIssuer for testing.
type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(ctx context.Context, apiSecret string, scope interfaces.Scope) (string, error) {
	args := m.Called(ctx, apiSecret, scope)
	return args.String(0), args.Error(1)
}

// MockSessionClient implements interfaces.IdentitySessionClient for testing.
type MockSessionClient struct {
	mock.Mock
}

func (m *MockSessionClient) OpenSession(ctx context.Context, kycAdminToken string) (*interfaces.VerificationSession, error) {
	args := m.Called(ctx, kycAdminToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.VerificationSession), args.Error(1)
}

func (m *MockSessionClient) Exchange(ctx context.Context, assertion, kycAdminToken, ssiAdminToken, sessionID string) (string, error) {
	args := m.Called(ctx, assertion, kycAdminToken, ssiAdminToken, sessionID)
	return args.String(0), args.Error(1)
}

// MockClaimSigner implements interfaces.ClaimSigner for testing.
type MockClaimSigner struct {
	mock.Mock
}

func (m *MockClaimSigner) Sign(ctx context.Context, claims interfaces.UserClaims, ssiAdminToken string) (string, error) {
	args := m.Called(ctx, claims, ssiAdminToken)
	return args.String(0), args.Error(1)
}

// MockDIDRegistrar implements interfaces.DIDRegistrar for testing.
type MockDIDRegistrar struct {
	mock.Mock
}

func (m *MockDIDRegistrar) CreateDID(ctx context.Context, namespace, ssiAdminToken string) (*interfaces.UserDID, error) {
	args := m.Called(ctx, namespace, ssiAdminToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.UserDID), args.Error(1)
}
