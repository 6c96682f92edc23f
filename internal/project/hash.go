package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a fixed 256-bit hash, compatible with source.File.Hash.
type Digest [32]byte

// Combine hashes content followed by deps. Callers pass deps in a
// deterministic order.
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// DigestOf hashes a list of file hashes plus extra key material such as the
// target type name and window.
func DigestOf(files [][32]byte, key ...string) Digest {
	h := sha256.New()
	for _, k := range key {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte{0})
	}
	var keyDigest Digest
	copy(keyDigest[:], h.Sum(nil))
	deps := make([]Digest, len(files))
	for i, f := range files {
		deps[i] = Digest(f)
	}
	return Combine(keyDigest, deps...)
}

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// Short is the first 12 hex digits, used in file names.
func (d Digest) Short() string { return d.String()[:12] }
