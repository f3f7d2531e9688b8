package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Bold", "Quiet", "Sly", "Daring", "Steady", "Reckless", "Patient", "Clever", "Brave",
	"Swift", "Cunning", "Stubborn", "Cheerful", "Grim", "Gentle", "Wild", "Calm", "Sharp", "Honest",
}

var cardWords = []string{
	"Ace", "King", "Queen", "Jack", "Trump", "Trick", "Dealer", "Bidder", "Partner", "Misere",
	"Slam", "Ruff", "Finesse", "Deuce", "Joker", "Shuffle", "Cut", "Lead", "Follower", "Declarer",
}

// GetRandomName returns a random display name by combining an adjective with a card term
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], cardWords[rand.Intn(len(cardWords))])
}
