package rewrite

import (
	"encoding/base64"
	"strings"
)

// EncodeResource converts a URL into a deterministic identifier that is safe
// to embed as a single path segment.
func EncodeResource(u string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(u))
}

// DecodeResource is the inverse of EncodeResource. Identifiers minted with
// padded base64url decode as well. Structurally invalid input reports false.
func DecodeResource(id string) (string, bool) {
	id = strings.TrimRight(id, "=")
	b, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		return "", false
	}
	return string(b), true
}
