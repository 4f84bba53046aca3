package storage

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ruteri/kyc-onboarding-backend/cryptoutils"
	"github.com/ruteri/kyc-onboarding-backend/interfaces"
)

// RecordCodec converts the credential record to and from its persisted form.
type RecordCodec interface {
	Encode(pair *interfaces.AdminCredentialPair) ([]byte, error)
	Decode(data []byte) (*interfaces.AdminCredentialPair, error)
}

// JSONCodec persists the record as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(pair *interfaces.AdminCredentialPair) ([]byte, error) {
	if pair == nil {
		return nil, errors.New("nil credential pair")
	}
	return json.MarshalIndent(pair, "", "  ")
}

func (JSONCodec) Decode(data []byte) (*interfaces.AdminCredentialPair, error) {
	var pair interfaces.AdminCredentialPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil, fmt.Errorf("failed to parse credential record: %w", err)
	}
	return &pair, nil
}

// SealedCodec encrypts the JSON record at rest. The output is base64 text so
// it fits backends that only accept strings.
type SealedCodec struct {
	key []byte
}

// NewSealedCodec derives the sealing key from an operator passphrase.
// The salt should be stable for a deployment, e.g. the store location.
func NewSealedCodec(passphrase, salt string) *SealedCodec {
	return &SealedCodec{key: cryptoutils.DeriveSealingKey([]byte(passphrase), []byte(salt))}
}

func (c *SealedCodec) Encode(pair *interfaces.AdminCredentialPair) ([]byte, error) {
	plaintext, err := JSONCodec{}.Encode(pair)
	if err != nil {
		return nil, err
	}

	sealed, err := cryptoutils.Seal(c.key, plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to seal credential record: %w", err)
	}

	out := make([]byte, base64.StdEncoding.EncodedLen(len(sealed)))
	base64.StdEncoding.Encode(out, sealed)
	return out, nil
}

func (c *SealedCodec) Decode(data []byte) (*interfaces.AdminCredentialPair, error) {
	sealed := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(sealed, data)
	if err != nil {
		return nil, fmt.Errorf("invalid sealed record encoding: %w", err)
	}

	plaintext, err := cryptoutils.Open(c.key, sealed[:n])
	if err != nil {
		return nil, err
	}

	return JSONCodec{}.Decode(plaintext)
}
