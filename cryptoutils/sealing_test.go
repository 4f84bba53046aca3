package cryptoutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSealOpen tests the Seal and Open functions
func TestSealOpen(t *testing.T) {
	key := DeriveSealingKey([]byte("correct horse battery staple"), []byte("host-a"))
	require.Len(t, key, 32)

	testCases := []struct {
		name string
		data []byte
	}{
		{
			name: "Credential record",
			data: []byte(`{"kycAdminToken":"a.b.c","ssiAdminToken":"d.e.f"}`),
		},
		{
			name: "Empty data",
			data: []byte{},
		},
		{
			name: "Long data",
			data: make([]byte, 1024),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := Seal(key, tc.data)
			require.NoError(t, err)
			require.Greater(t, len(sealed), len(tc.data))

			opened, err := Open(key, sealed)
			require.NoError(t, err)
			require.Equal(t, len(tc.data), len(opened))
			if len(tc.data) > 0 {
				require.Equal(t, tc.data, opened)
			}
		})
	}
}

func TestOpen_Failures(t *testing.T) {
	key := DeriveSealingKey([]byte("passphrase"), nil)
	otherKey := DeriveSealingKey([]byte("passphrase"), []byte("other-salt"))
	require.NotEqual(t, key, otherKey)

	sealed, err := Seal(key, []byte("secret"))
	require.NoError(t, err)

	_, err = Open(otherKey, sealed)
	require.Error(t, err)

	_, err = Open(key, sealed[:5])
	require.Error(t, err)

	tampered := append([]byte{}, sealed...)
	tampered[len(tampered)-1] ^= 0xff
	_, err = Open(key, tampered)
	require.Error(t, err)

	_, err = Seal([]byte("short"), []byte("secret"))
	require.Error(t, err)
}

func TestDeriveSealingKey_Deterministic(t *testing.T) {
	require.Equal(t,
		DeriveSealingKey([]byte("passphrase"), []byte("salt")),
		DeriveSealingKey([]byte("passphrase"), []byte("salt")))
}
