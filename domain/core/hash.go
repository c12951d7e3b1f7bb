package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// ComputeSeriesHash fingerprints paired float series by their exact bit
// patterns. Identical inputs always hash identically.
func ComputeSeriesHash(columns ...[]float64) Hash {
	buf := make([]byte, 0, 64)
	for _, col := range columns {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(len(col)))
		for _, v := range col {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return NewHash(buf)
}
