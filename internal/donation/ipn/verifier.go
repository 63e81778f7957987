// Package ipn authenticates NOWPayments instant payment notifications.
package ipn

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Verifier recomputes the expected signature of an IPN payload with a
// pre-shared secret. Pure; holds no mutable state.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Sign computes the hex-encoded HMAC-SHA512 of the canonical form of the
// payload: keys sorted lexicographically, re-serialized as compact JSON.
// Canonicalization makes the signature independent of the key order the
// gateway happened to send.
func (v *Verifier) Sign(payload map[string]any) (string, error) {
	canonical, err := canonicalize(payload)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha512.New, v.secret)
	_, _ = mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify reports whether signature matches the payload. Comparison is
// constant-time.
func (v *Verifier) Verify(payload map[string]any, signature string) bool {
	signature = strings.TrimSpace(signature)
	if signature == "" {
		return false
	}

	expected, err := v.Sign(payload)
	if err != nil {
		return false
	}

	return hmac.Equal([]byte(expected), []byte(signature))
}

func canonicalize(payload map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf strings.Builder
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(payload[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')

	return []byte(buf.String()), nil
}
