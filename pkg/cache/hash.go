package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"math"
)

// digestVersion is the first word of every render digest. Bump it when the
// layout written by renderDigest changes.
const digestVersion = 1

// renderDigest hashes the render inputs in a fixed big-endian layout.
// Coordinates are hashed by their IEEE 754 bits, so two requests share a key
// only when every corner is bit-identical. Negative zero is folded into zero
// because both sample the same points.
func renderDigest(opts RenderKeyOpts) string {
	h := sha256.New()
	writeUint(h, digestVersion)
	writeUint(h, uint64(opts.Width))
	writeUint(h, uint64(opts.Height))
	for _, f := range [...]float64{opts.ULRe, opts.ULIm, opts.LRRe, opts.LRIm} {
		if f == 0 {
			f = 0
		}
		writeUint(h, math.Float64bits(f))
	}
	writeUint(h, uint64(opts.Limit))
	writeString(h, opts.Palette)
	writeString(h, opts.Mapping)
	return hex.EncodeToString(h.Sum(nil))
}

func writeUint(h hash.Hash, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	h.Write(b[:])
}

// writeString writes s with a length prefix so adjacent strings cannot run
// into each other.
func writeString(h hash.Hash, s string) {
	writeUint(h, uint64(len(s)))
	h.Write([]byte(s))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
