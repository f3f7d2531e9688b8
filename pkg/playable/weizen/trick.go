package weizen

import (
	"weizen-server/pkg/deck"
)

// value bonuses ensure trump always beats the led suit, and the led suit
// always beats an off-suit card, regardless of rank
const (
	trumpBonus   = 1000
	ledSuitBonus = 100
)

type playedCard struct {
	player *participant
	card   *deck.Card
}

// trick is the set of cards played in one exchange
type trick struct {
	ledSuit *deck.Suit
	plays   []*playedCard
}

func newTrick() *trick {
	return &trick{
		plays: make([]*playedCard, 0, numSeats),
	}
}

// addPlay records a play. The first play establishes the led suit.
func (t *trick) addPlay(p *participant, card *deck.Card) {
	if t.ledSuit == nil {
		suit := card.Suit
		t.ledSuit = &suit
	}

	t.plays = append(t.plays, &playedCard{player: p, card: card})
}

// isComplete returns true once every seat has played
func (t *trick) isComplete() bool {
	return len(t.plays) >= numSeats
}

// cards returns the cards played so far, in play order
func (t *trick) cards() []*deck.Card {
	cards := make([]*deck.Card, len(t.plays))
	for i, pc := range t.plays {
		cards[i] = pc.card
	}

	return cards
}

// winner determines the winning play under trump/led-suit precedence
func (t *trick) winner(trump *deck.Suit) *playedCard {
	var best *playedCard
	bestValue := -1

	for _, pc := range t.plays {
		value := cardValue(pc.card, trump, t.ledSuit)
		if value > bestValue {
			bestValue = value
			best = pc
		}
	}

	return best
}

// cardValue scores a card for trick-winner determination: base rank, plus a
// trump bonus when the contract has a trump suit and the card matches it,
// plus a led-suit bonus when the card follows the led suit
func cardValue(card *deck.Card, trump, led *deck.Suit) int {
	value := card.Rank
	if trump != nil && card.Suit == *trump {
		value += trumpBonus
	} else if led != nil && card.Suit == *led {
		value += ledSuitBonus
	}

	return value
}
