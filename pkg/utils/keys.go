package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DecodeKey reads a base64 secret of at least 32 bytes. ok is false when the
// value is missing or too short; the caller then falls back to RandomKey.
func DecodeKey(encoded string) (key []byte, ok bool) {
	if encoded == "" {
		return nil, false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(decoded) < 32 {
		return nil, false
	}
	return decoded, true
}

func RandomKey(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("crypto/rand unavailable: " + err.Error())
	}
	return b
}

// DeriveKey expands secret into an n byte key bound to label, so one secret
// can feed the cookie hash key and the cookie encryption key.
func DeriveKey(secret []byte, label string, n int) []byte {
	out := make([]byte, n)
	r := hkdf.New(sha256.New, secret, nil, []byte("marketplace-console/"+label))
	if _, err := io.ReadFull(r, out); err != nil {
		panic("hkdf: " + err.Error())
	}
	return out
}
