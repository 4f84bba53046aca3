package cryptoutils

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// unverifiedParser only decodes segments. Upstream-issued admin tokens are
// never verified here, their advertised expiry is read for caching decisions.
var unverifiedParser = jwt.NewParser(jwt.WithPaddingAllowed())

// ExpiresAt returns the exp claim of a compact JWS without verifying its
// signature. Only the payload segment is read, so the header and signature
// may be absent or unparseable. The zero time is returned when the token is
// empty, has no payload segment, carries a non-JSON payload or has no exp
// claim.
func ExpiresAt(token string) time.Time {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return time.Time{}
	}

	payload, err := unverifiedParser.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}

// ExpiryMillis returns the token expiry as unix milliseconds, or 0 when the
// expiry cannot be read. A zero result is treated as already expired.
func ExpiryMillis(token string) int64 {
	exp := ExpiresAt(token)
	if exp.IsZero() {
		return 0
	}
	return exp.UnixMilli()
}
