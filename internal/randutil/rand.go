// Package randutil centralises how the trainer derives its random sources so
// that a game can be replayed from a single seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The two 64-bit PCG seeds are derived with a splitmix finaliser so nearby
// seeds still produce unrelated sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve returns seed unchanged unless it is zero, in which case a seed is
// derived from now. Zero is the "pick one for me" value in config and flags.
func Resolve(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	s := int64(mix(uint64(now.UnixNano())) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// Derive returns a child seed for stream n of a parent seed. Workers use it to
// get independent generators without sharing one.
func Derive(seed int64, n int) int64 {
	return int64(mix(uint64(seed) + uint64(n+1)*goldenRatio64))
}

// Pick returns an element of items chosen uniformly with rng. It panics on
// an empty slice.
func Pick[T any](rng *rand.Rand, items []T) T {
	if len(items) == 1 {
		return items[0]
	}
	if rng == nil {
		return items[rand.IntN(len(items))]
	}
	return items[rng.IntN(len(items))]
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
