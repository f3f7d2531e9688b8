package weizen

import (
	"weizen-server/pkg/deck"
)

// Contract is the resolved objective for one round.
// Trump is nil for the contracts played without a trump suit.
type Contract struct {
	Type     BidType    `json:"type"`
	BidderID int64      `json:"bidderId"`
	Partners []int64    `json:"partners"`
	Trump    *deck.Suit `json:"trump"`
}

// isPartner returns true if the player is on the contract side
func (c *Contract) isPartner(playerID int64) bool {
	for _, pid := range c.Partners {
		if pid == playerID {
			return true
		}
	}

	return false
}

// resolveContract determines the partnership and the effective trump suit
// for the winning declaration
func (g *Game) resolveContract(winner *BidEntry) *Contract {
	contract := &Contract{
		Type:     winner.Type,
		BidderID: winner.PlayerID,
		Partners: []int64{winner.PlayerID},
	}

	switch winner.Type {
	case BidVraag, BidMeegaan:
		// the asker and the accepter form a pair; without an accepter the
		// asker plays solo
		if entry := g.auction.findBid(BidMeegaan); entry != nil && entry.PlayerID != winner.PlayerID {
			contract.Partners = []int64{winner.PlayerID, entry.PlayerID}
		}
	case BidTroel:
		if pid, ok := g.findFourthAceHolder(winner.PlayerID); ok {
			contract.Partners = []int64{winner.PlayerID, pid}
		}
	}

	if winner.Type.HasTrump() && g.trumpCard != nil {
		suit := g.trumpCard.Suit
		contract.Trump = &suit
	}

	return contract
}

// findFourthAceHolder locates the player holding the ace of the suit the
// troel bidder is missing. Returns false if no such player exists.
func (g *Game) findFourthAceHolder(bidderID int64) (int64, bool) {
	bidder, ok := g.participants[bidderID]
	if !ok {
		return 0, false
	}

	bidderAceSuits := make(map[deck.Suit]bool)
	for _, c := range bidder.hand {
		if c.Rank == deck.Ace {
			bidderAceSuits[c.Suit] = true
		}
	}

	for _, pid := range g.seatOrder {
		if pid == bidderID {
			continue
		}

		for _, c := range g.participants[pid].hand {
			if c.Rank == deck.Ace && !bidderAceSuits[c.Suit] {
				return pid, true
			}
		}
	}

	return 0, false
}
