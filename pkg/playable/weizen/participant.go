package weizen

import (
	"weizen-server/pkg/deck"
)

// participant is an individual seated in the game
type participant struct {
	PlayerID int64

	hand     deck.Hand
	captured deck.Hand

	lastBid    BidType
	tricksWon  int
	score      int
	roundScore int
	cheatFlags int
}

func newParticipant(pid int64) *participant {
	return &participant{
		PlayerID: pid,
		hand:     make(deck.Hand, 0, cardsPerHand),
		captured: make(deck.Hand, 0),
	}
}

// newRound resets the per-round state ahead of a fresh deal
func (p *participant) newRound() {
	p.hand = make(deck.Hand, 0, cardsPerHand)
	p.captured = make(deck.Hand, 0)
	p.lastBid = ""
	p.tricksWon = 0
	p.roundScore = 0
}

// playCard removes the card from the participant's hand
func (p *participant) playCard(card *deck.Card) error {
	if p.hand.Discard(card) == 0 {
		return ErrCardNotInHand
	}

	return nil
}

// capture adds the trick's cards to the participant's captured pile
func (p *participant) capture(cards []*deck.Card) {
	p.captured = append(p.captured, cards...)
	p.tricksWon++
}

// queensCaptured counts the queens in the captured pile
func (p *participant) queensCaptured() int {
	return p.captured.CountRank(deck.Queen)
}

// applyScore adds the delta to the cumulative score and overwrites the
// round delta. Later scoring calls in the same round replace, not add.
func (p *participant) applyScore(delta int) {
	p.score += delta
	p.roundScore = delta
}
