// Package hash computes stable digests of instruction lists.
//
// Two classification runs over the same archive must produce the same
// instructions in the same order. The digest makes that comparable across
// runs and processes: it is printed by the CLI and checked by tests. The
// package provides a SHA-256 implementation and a fake for testing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/danieljhkim/modlayout/internal/planner"
)

// Hasher provides an abstraction for instruction digests.
type Hasher interface {
	// HashInstructions computes the digest of ins. Order is significant.
	HashInstructions(ins []planner.Instruction) string
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashInstructions hashes every instruction as type, source and destination
// separated by NUL and terminated by a newline, so no two distinct lists
// share an encoding.
func (h *SHA256Hasher) HashInstructions(ins []planner.Instruction) string {
	hasher := sha256.New()
	for _, in := range ins {
		writeField(hasher, in.Type, 0)
		writeField(hasher, in.Source, 0)
		writeField(hasher, in.Destination, '\n')
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func writeField(w io.Writer, s string, sep byte) {
	_, _ = io.WriteString(w, s)
	_, _ = w.Write([]byte{sep})
}

// FakeHasher implements Hasher with deterministic digests for testing.
type FakeHasher struct {
	digests map[int]string
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{
		digests: make(map[int]string),
	}
}

// SetDigest sets the digest returned for lists of length n (for testing).
func (h *FakeHasher) SetDigest(n int, digest string) {
	h.digests[n] = digest
}

// HashInstructions returns the predetermined digest for len(ins).
func (h *FakeHasher) HashInstructions(ins []planner.Instruction) string {
	if d, ok := h.digests[len(ins)]; ok {
		return d
	}
	// Default digest if not set
	return "fakehash"
}
