package weizen

// Options are options for creating a new weizen game
type Options struct {
	// BuyIn is the amount each player stakes to sit down
	BuyIn int

	// Rounds is the number of rounds before the game finishes
	Rounds int
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		BuyIn:  100,
		Rounds: 10,
	}
}
