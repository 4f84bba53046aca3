package cryptoutils

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDID(t *testing.T) {
	method, id, err := ParseDID("did:hid:z6Mkih2GSH8hMhFXGXw387cK76v7V4PUhFUu8TNWUkXsEAGu")
	require.NoError(t, err)
	assert.Equal(t, "hid", method)
	assert.Equal(t, "z6Mkih2GSH8hMhFXGXw387cK76v7V4PUhFUu8TNWUkXsEAGu", id)

	// Method-specific ids may themselves contain colons.
	method, id, err = ParseDID("did:hid:testnet:z6Mk")
	require.NoError(t, err)
	assert.Equal(t, "hid", method)
	assert.Equal(t, "testnet:z6Mk", id)

	for _, bad := range []string{"", "did", "did:hid", "urn:hid:abc", "did::abc", "did:hid:"} {
		_, _, err := ParseDID(bad)
		assert.ErrorIs(t, err, ErrInvalidDID, bad)
	}
}

func TestEd25519KeyFromDID(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	encoded, err := multibase.Encode(multibase.Base58BTC, append([]byte{0xed, 0x01}, pub...))
	require.NoError(t, err)

	key, err := Ed25519KeyFromDID("did:hid:" + encoded)
	require.NoError(t, err)
	assert.Equal(t, pub, key)

	key, err = Ed25519KeyFromDID("did:hid:testnet:" + encoded)
	require.NoError(t, err)
	assert.Equal(t, pub, key)
}

func TestEd25519KeyFromDID_KnownIssuer(t *testing.T) {
	key, err := Ed25519KeyFromDID("did:hid:z6Mkih2GSH8hMhFXGXw387cK76v7V4PUhFUu8TNWUkXsEAGu")
	require.NoError(t, err)
	assert.Len(t, key, ed25519.PublicKeySize)
}

func TestEd25519KeyFromDID_Rejects(t *testing.T) {
	secp, err := multibase.Encode(multibase.Base58BTC, append([]byte{0xe7, 0x01}, make([]byte, 33)...))
	require.NoError(t, err)
	short, err := multibase.Encode(multibase.Base58BTC, append([]byte{0xed, 0x01}, make([]byte, 16)...))
	require.NoError(t, err)

	for _, did := range []string{
		"not-a-did",
		"did:hid:!!!",
		"did:hid:" + secp,
		"did:hid:" + short,
	} {
		_, err := Ed25519KeyFromDID(did)
		assert.ErrorIs(t, err, ErrInvalidDID, did)
	}
}

func TestVerificationMethodMatchesDID(t *testing.T) {
	did := "did:hid:z6Mkih2GSH8hMhFXGXw387cK76v7V4PUhFUu8TNWUkXsEAGu"
	assert.True(t, VerificationMethodMatchesDID(did+"#key-1", did))
	assert.False(t, VerificationMethodMatchesDID(did+"#", did))
	assert.False(t, VerificationMethodMatchesDID(did, did))
	assert.False(t, VerificationMethodMatchesDID("did:hid:other#key-1", did))
}
