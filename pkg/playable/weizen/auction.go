package weizen

// auction tracks a single round's bidding phase
type auction struct {
	log           []*BidEntry
	activeBidders map[int64]bool
	passesInARow  int
}

func newAuction(playerIDs []int64) *auction {
	active := make(map[int64]bool)
	for _, pid := range playerIDs {
		active[pid] = true
	}

	return &auction{
		log:           make([]*BidEntry, 0),
		activeBidders: active,
		passesInARow:  0,
	}
}

// recordPass removes the player from the active-bidder set
func (a *auction) recordPass(playerID int64) {
	a.passesInARow++
	delete(a.activeBidders, playerID)
	a.log = append(a.log, &BidEntry{PlayerID: playerID, Type: BidPass})
}

// recordBid appends an accepted declaration.
// The declarer re-enters the active-bidder set; a stronger declaration by
// another active bidder can still overtake until the auction closes.
func (a *auction) recordBid(playerID int64, bid BidType) {
	a.passesInARow = 0
	a.activeBidders[playerID] = true
	a.log = append(a.log, &BidEntry{PlayerID: playerID, Type: bid})
}

// isClosed returns true once at most one bidder remains active or three
// consecutive passes have been declared
func (a *auction) isClosed() bool {
	return len(a.activeBidders) <= 1 || a.passesInARow >= 3
}

// winningBid returns the non-pass entry with the strongest priority,
// independent of declaration order. Returns nil if everyone passed.
func (a *auction) winningBid() *BidEntry {
	var winner *BidEntry
	for _, entry := range a.log {
		if entry.Type == BidPass {
			continue
		}

		if winner == nil || entry.Type.priorityIndex() < winner.Type.priorityIndex() {
			winner = entry
		}
	}

	return winner
}

// hasBid returns true if the bid type appears in the auction log
func (a *auction) hasBid(bid BidType) bool {
	for _, entry := range a.log {
		if entry.Type == bid {
			return true
		}
	}

	return false
}

// findBid returns the first log entry with the bid type, or nil
func (a *auction) findBid(bid BidType) *BidEntry {
	for _, entry := range a.log {
		if entry.Type == bid {
			return entry
		}
	}

	return nil
}
