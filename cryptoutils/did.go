package cryptoutils

import (
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"
)

// ed25519MulticodecPrefix is the multicodec varint prefix for Ed25519 public keys.
var ed25519MulticodecPrefix = []byte{0xed, 0x01}

var ErrInvalidDID = errors.New("invalid DID")

// ParseDID splits a DID into its method and method-specific identifier.
func ParseDID(did string) (method string, id string, err error) {
	parts := strings.SplitN(did, ":", 3)
	if len(parts) != 3 || parts[0] != "did" {
		return "", "", fmt.Errorf("%w: %q must have the form did:<method>:<id>", ErrInvalidDID, did)
	}
	if parts[1] == "" || parts[2] == "" {
		return "", "", fmt.Errorf("%w: %q has an empty method or identifier", ErrInvalidDID, did)
	}
	return parts[1], parts[2], nil
}

// Ed25519KeyFromDID decodes the Ed25519 public key carried in a multibase
// method-specific identifier such as did:hid:z6Mk... or did:key:z6Mk...
// A network prefix (did:hid:testnet:z6Mk...) is skipped.
func Ed25519KeyFromDID(did string) (ed25519.PublicKey, error) {
	_, id, err := ParseDID(did)
	if err != nil {
		return nil, err
	}
	if i := strings.LastIndexByte(id, ':'); i >= 0 {
		id = id[i+1:]
	}

	_, decoded, err := multibase.Decode(id)
	if err != nil {
		return nil, fmt.Errorf("%w: multibase decode: %v", ErrInvalidDID, err)
	}

	if !bytes.HasPrefix(decoded, ed25519MulticodecPrefix) {
		return nil, fmt.Errorf("%w: identifier is not an Ed25519 multikey", ErrInvalidDID)
	}

	rawKey := decoded[len(ed25519MulticodecPrefix):]
	if len(rawKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d key bytes, got %d", ErrInvalidDID, ed25519.PublicKeySize, len(rawKey))
	}

	return ed25519.PublicKey(rawKey), nil
}

// VerificationMethodMatchesDID reports whether vmID is a fragment reference into did.
func VerificationMethodMatchesDID(vmID, did string) bool {
	fragment, ok := strings.CutPrefix(vmID, did+"#")
	return ok && fragment != ""
}
