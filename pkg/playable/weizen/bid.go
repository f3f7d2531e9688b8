package weizen

// BidType is a contract declared during the auction
type BidType string

// bid type constants
const (
	BidPass             BidType = "pass"
	BidVraag            BidType = "vraag"
	BidMeegaan          BidType = "meegaan"
	BidAlleenGaan       BidType = "alleen-gaan"
	BidGeenDames        BidType = "geen-dames"
	BidPico             BidType = "pico"
	BidMisere           BidType = "misere"
	BidOpenMisere       BidType = "open-misere"
	BidTroel            BidType = "troel"
	BidAbondance        BidType = "abondance"
	BidAbondanceInTroef BidType = "abondance-in-troef"
	BidSoloSlim         BidType = "solo-slim"
)

// bidPriority ranks bid types from strongest to weakest.
// The auction winner is the entry with the lowest index here, regardless of
// the order the bids were declared in.
var bidPriority = []BidType{
	BidTroel,
	BidSoloSlim,
	BidOpenMisere,
	BidAbondanceInTroef,
	BidAbondance,
	BidPico,
	BidMisere,
	BidVraag,
	BidMeegaan,
	BidAlleenGaan,
	BidGeenDames,
	BidPass,
}

// priorityIndex returns the position of the bid type in the priority table
// Unknown bid types sort after everything else.
func (b BidType) priorityIndex() int {
	for i, t := range bidPriority {
		if t == b {
			return i
		}
	}

	return len(bidPriority)
}

// IsValid returns true if the bid type exists
func (b BidType) IsValid() bool {
	return b.priorityIndex() < len(bidPriority)
}

// HasTrump returns false for the contracts played without a trump suit
func (b BidType) HasTrump() bool {
	switch b {
	case BidMisere, BidOpenMisere, BidPico, BidGeenDames:
		return false
	}

	return true
}

// BidEntry is a single declaration in the auction log
type BidEntry struct {
	PlayerID int64   `json:"playerId"`
	Type     BidType `json:"bidType"`
}
