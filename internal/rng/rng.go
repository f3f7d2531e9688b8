package rng

// Generator is a source of random integers, satisfied by math/rand
type Generator interface {
	// Intn returns a random int in the range [0, n)
	Intn(n int) int
}
