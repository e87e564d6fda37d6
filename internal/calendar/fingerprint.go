package calendar

import (
	"bytes"

	"github.com/ospworks/runway/internal/canon"
)

// Domain prefix for the holiday fingerprint. The version suffix enables
// future algorithm migration without silently colliding with old hashes.
const fingerprintDomain = "runway/holidays/v1"

// Fingerprint computes a stable content hash over the ordered (date, label)
// pairs of the set. Any change to a date or label, and any addition or
// removal, changes the hash. Serialization is canonical (dates in
// DateFormat, labels NFC-normalized, fixed pair order), so the same set
// always hashes identically across runs and platforms.
func (s Set) Fingerprint() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, h := range s.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(canon.StringArray([]string{h.Date.Format(DateFormat), h.Label}))
	}
	buf.WriteByte(']')
	return canon.HashWithDomain(fingerprintDomain, buf.Bytes())
}
