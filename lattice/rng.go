package lattice

import "math/rand"

// defaultSeed replaces a zero seed so that "no seed" is still reproducible.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand; seed 0 means defaultSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream number with a SplitMix64
// finalizer, giving uncorrelated seeds for neighbouring streams.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}
