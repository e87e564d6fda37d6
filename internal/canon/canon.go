// Package canon provides the canonical serialization and domain-separated
// hashing used for content-addressed identity: holiday set fingerprints and
// stable proposal record keys. Identical content must hash identically
// across runs and platforms, so all strings are NFC-normalized and encoded
// without HTML escaping before hashing.
package canon

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// HashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func HashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// String produces a canonical JSON string: NFC normalized, HTML escaping
// disabled so <, >, and & survive as-is.
func String(s string) []byte {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		// json.Encoder cannot fail on a plain string.
		panic(fmt.Sprintf("canonical string encode: %v", err))
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result
}

// StringArray produces a canonical JSON array of canonical strings.
func StringArray(items []string) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(String(s))
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
