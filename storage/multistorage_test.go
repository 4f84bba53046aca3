package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMultiStore_Available(t *testing.T) {
	tests := []struct {
		name     string
		stores   []bool
		expected bool
	}{
		{
			name:     "all stores available",
			stores:   []bool{true, true, true},
			expected: true,
		},
		{
			name:     "some stores available",
			stores:   []bool{false, true, false},
			expected: true,
		},
		{
			name:     "no stores available",
			stores:   []bool{false, false, false},
			expected: false,
		},
		{
			name:     "no stores",
			stores:   []bool{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stores []interfaces.CredentialStore
			for i, available := range tt.stores {
				mockStore := &MockCredentialStore{StoreName: fmt.Sprintf("mock-A%x", i)}
				mockStore.On("Available", mock.Anything).Return(available).Maybe()
				stores = append(stores, mockStore)
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			multi := NewMultiStore(stores, logger)

			assert.Equal(t, tt.expected, multi.Available(context.Background()))

			for _, store := range stores {
				store.(*MockCredentialStore).AssertExpectations(t)
			}
		})
	}
}

func TestMultiStore_Load(t *testing.T) {
	testPair := &interfaces.AdminCredentialPair{KYCAdminToken: "kyc", SSIAdminToken: "ssi"}
	testErr := errors.New("test error")
	corrupt := &interfaces.CacheCorruptError{Location: "mock://a", Err: testErr}

	tests := []struct {
		name          string
		setupMocks    func() []interfaces.CredentialStore
		expectedPair  *interfaces.AdminCredentialPair
		expectedError error
	}{
		{
			name: "first store successful",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Load", mock.Anything).Return(testPair, nil)

				// Not consulted once the first store answers
				mock2 := &MockCredentialStore{StoreName: "mock-B"}

				return []interfaces.CredentialStore{mock1, mock2}
			},
			expectedPair: testPair,
		},
		{
			name: "corrupt record falls back to next store",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Load", mock.Anything).Return(nil, corrupt)

				mock2 := &MockCredentialStore{StoreName: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Load", mock.Anything).Return(testPair, nil)

				return []interfaces.CredentialStore{mock1, mock2}
			},
			expectedPair: testPair,
		},
		{
			name: "all stores empty",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Load", mock.Anything).Return(nil, interfaces.ErrCredentialsNotFound)

				mock2 := &MockCredentialStore{StoreName: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Load", mock.Anything).Return(nil, interfaces.ErrCredentialsNotFound)

				return []interfaces.CredentialStore{mock1, mock2}
			},
			expectedError: interfaces.ErrCredentialsNotFound,
		},
		{
			name: "unavailable stores are skipped",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(false)

				mock2 := &MockCredentialStore{StoreName: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Load", mock.Anything).Return(testPair, nil)

				return []interfaces.CredentialStore{mock1, mock2}
			},
			expectedPair: testPair,
		},
		{
			name: "no store available",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(false)

				return []interfaces.CredentialStore{mock1}
			},
			expectedError: interfaces.ErrBackendUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores := tt.setupMocks()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			multi := NewMultiStore(stores, logger)

			pair, err := multi.Load(context.Background())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedPair, pair)

			for _, store := range stores {
				store.(*MockCredentialStore).AssertExpectations(t)
			}
		})
	}
}

func TestMultiStore_Save(t *testing.T) {
	testPair := &interfaces.AdminCredentialPair{KYCAdminToken: "kyc", SSIAdminToken: "ssi"}
	testErr := errors.New("test error")

	tests := []struct {
		name          string
		setupMocks    func() []interfaces.CredentialStore
		expectedError bool
	}{
		{
			name: "all stores successful",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Save", mock.Anything, testPair).Return(nil)

				mock2 := &MockCredentialStore{StoreName: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Save", mock.Anything, testPair).Return(nil)

				return []interfaces.CredentialStore{mock1, mock2}
			},
		},
		{
			name: "some stores fail",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Save", mock.Anything, testPair).Return(testErr)

				mock2 := &MockCredentialStore{StoreName: "mock-B"}
				mock2.On("Available", mock.Anything).Return(true)
				mock2.On("Save", mock.Anything, testPair).Return(nil)

				return []interfaces.CredentialStore{mock1, mock2}
			},
		},
		{
			name: "all stores fail",
			setupMocks: func() []interfaces.CredentialStore {
				mock1 := &MockCredentialStore{StoreName: "mock-A"}
				mock1.On("Available", mock.Anything).Return(true)
				mock1.On("Save", mock.Anything, testPair).Return(testErr)

				mock2 := &MockCredentialStore{StoreName: "mock-B"}
				mock2.On("Available", mock.Anything).Return(false)

				return []interfaces.CredentialStore{mock1, mock2}
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stores := tt.setupMocks()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			multi := NewMultiStore(stores, logger)

			err := multi.Save(context.Background(), testPair)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, store := range stores {
				store.(*MockCredentialStore).AssertExpectations(t)
			}
		})
	}
}
