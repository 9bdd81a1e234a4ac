// Package randsrc provides the per-run random number source. Every run owns
// exactly one Source, threaded explicitly through the call chain; there is
// no process-wide generator, so parallel runs cannot interfere.
package randsrc

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	mrand "math/rand/v2"
)

// Source wraps a seedable PCG generator for one evaluation run.
type Source struct {
	rng *mrand.Rand
}

// New creates a deterministic Source from a seed.
func New(seed uint64) *Source {
	return &Source{rng: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandom creates a Source seeded from the operating system's entropy.
func NewRandom() *Source {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand is documented never to fail on supported platforms.
		panic("randsrc: cannot read entropy: " + err.Error())
	}
	return New(binary.LittleEndian.Uint64(buf[:]))
}

// Int64N returns a uniform random int64 in [0, n). n must be > 0.
func (s *Source) Int64N(n int64) int64 {
	return s.rng.Int64N(n)
}

// IntN returns a uniform random int in [0, n). n must be > 0.
func (s *Source) IntN(n int) int {
	return s.rng.IntN(n)
}

// Float64 returns a uniform random float64 in [0.0, 1.0).
func (s *Source) Float64() float64 {
	return s.rng.Float64()
}

// Perm returns a random permutation of [0, n).
func (s *Source) Perm(n int) []int {
	return s.rng.Perm(n)
}

// Reader exposes the source as an io.Reader so byte-hungry consumers
// (uuid generation) draw from the same seeded stream.
func (s *Source) Reader() io.Reader {
	return &reader{src: s}
}

type reader struct {
	src *Source
	buf [8]byte
	n   int // unread bytes remaining in buf
}

func (r *reader) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if r.n == 0 {
			binary.LittleEndian.PutUint64(r.buf[:], r.src.rng.Uint64())
			r.n = len(r.buf)
		}
		copied := copy(p[total:], r.buf[len(r.buf)-r.n:])
		r.n -= copied
		total += copied
	}
	return total, nil
}
