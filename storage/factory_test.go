package storage

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreFactory_StoreFor(t *testing.T) {
	factory := NewStoreFactory(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, "")
	dir := t.TempDir()

	tests := []struct {
		name     string
		uri      string
		wantType interface{}
		wantErr  bool
	}{
		{name: "file", uri: "file://" + filepath.Join(dir, "creds.json"), wantType: &FileStore{}},
		{name: "memory", uri: "mem://", wantType: &MemoryStore{}},
		{name: "s3", uri: "s3://bucket/creds.json?region=eu-west-1", wantType: &S3Store{}},
		{name: "vault", uri: "vault://vault.local:8200/secret/kyc/admin?tls=false", wantType: &VaultStore{}},
		{name: "redis", uri: "redis://localhost:6379/0?key=kyc:creds", wantType: &RedisStore{}},
		{name: "redis bad option", uri: "redis://localhost:6379/0?bogus=1", wantErr: true},
		{name: "vault without secret path", uri: "vault://vault.local:8200/secret", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			location, err := interfaces.NewCredentialStoreLocation(tt.uri)
			require.NoError(t, err)

			store, err := factory.StoreFor(location)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, store)
		})
	}
}

func TestStoreFactory_CreateMultiStore(t *testing.T) {
	factory := NewStoreFactory(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, "")

	locations, err := ParseLocations("mem://, file://" + filepath.Join(t.TempDir(), "creds.json"))
	require.NoError(t, err)
	require.Len(t, locations, 2)

	store, err := factory.CreateMultiStore(locations)
	require.NoError(t, err)
	assert.IsType(t, &MultiStore{}, store)

	single, err := factory.CreateMultiStore(locations[:1])
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, single)

	_, err = ParseLocations(" , ")
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)

	_, err = ParseLocations("ftp://host/creds")
	assert.ErrorIs(t, err, interfaces.ErrInvalidLocationURI)
}

func TestStoreFactory_RedisKey(t *testing.T) {
	factory := NewStoreFactory(slog.New(slog.NewTextHandler(io.Discard, nil)), nil, "")

	location, err := interfaces.NewCredentialStoreLocation("redis://:secret@localhost:6379/2?key=kyc:creds&dial_timeout=3s")
	require.NoError(t, err)

	store, err := factory.StoreFor(location)
	require.NoError(t, err)
	assert.Equal(t, "redis-kyc:creds", store.Name())
	assert.Equal(t, "redis://localhost:6379/2?key=kyc:creds", store.LocationURI())
}
