package hub

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// digestSeparator joins per-file digests before the aggregate hash is
// computed. Changing file order changes the aggregate; order reflects
// manifest declaration order.
const digestSeparator = "::"

// digest computes the lowercase hex SHA-256 digest of data.
func digest(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// aggregateDigest computes the package-level hash over an ordered list of
// per-file digests: SHA-256 of the digests joined with "::".
func aggregateDigest(digests []string) string {
	return digest([]byte(strings.Join(digests, digestSeparator)))
}

// verifyDigest computes the SHA-256 digest of data and compares it to
// expected. Returns nil on match, ErrDigestMismatch otherwise.
// The expected digest should be a lowercase hex-encoded string.
func verifyDigest(data []byte, expected string) error {
	if digest(data) != expected {
		return ErrDigestMismatch
	}
	return nil
}
