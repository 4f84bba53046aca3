package storage

import (
	"testing"

	"github.com/ruteri/kyc-onboarding-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec_WireNames(t *testing.T) {
	data, err := JSONCodec{}.Encode(&interfaces.AdminCredentialPair{KYCAdminToken: "a", SSIAdminToken: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kycAdminToken":"a","ssiAdminToken":"b"}`, string(data))

	pair, err := JSONCodec{}.Decode([]byte(`{"kycAdminToken":"a"}`))
	require.NoError(t, err)
	assert.Equal(t, "a", pair.KYCAdminToken)
	assert.False(t, pair.Complete())
}

func TestSealedCodec_RejectsGarbage(t *testing.T) {
	codec := NewSealedCodec("passphrase", "salt")

	for _, input := range []string{"", "!!!not base64", "c2hvcnQ="} {
		_, err := codec.Decode([]byte(input))
		assert.Error(t, err, "input %q", input)
	}
}
