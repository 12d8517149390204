package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a fixed 256-bit hash.
type Digest [32]byte

// Sum hashes data.
func Sum(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Combine builds a composite hash: H(first || rest...). Callers keep the
// order of rest deterministic.
func Combine(first Digest, rest ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(first[:])
	for _, d := range rest {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
