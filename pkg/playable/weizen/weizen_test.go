package weizen

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"weizen-server/pkg/deck"
	"weizen-server/pkg/playable"
)

func testGame(t *testing.T) *Game {
	t.Helper()

	g, err := NewGame(logrus.StandardLogger(), []int64{1, 2, 3, 4}, Options{})
	assert.NoError(t, err)

	return g
}

func bidPayload(bid BidType) *playable.PayloadIn {
	return &playable.PayloadIn{
		Action:         "bid",
		AdditionalData: playable.AdditionalData{"bidType": string(bid)},
	}
}

func playCardPayload(card string) *playable.PayloadIn {
	return &playable.PayloadIn{
		Action: "playCard",
		Cards:  []*deck.Card{deck.CardFromString(card)},
	}
}

func votePayload(vote bool) *playable.PayloadIn {
	return &playable.PayloadIn{
		Action:         "voteCheat",
		AdditionalData: playable.AdditionalData{"vote": vote},
	}
}

// allReady sends the given action for every seat
func allReady(t *testing.T, g *Game, action string) {
	t.Helper()

	for pid := int64(1); pid <= 4; pid++ {
		_, _, err := g.Action(pid, &playable.PayloadIn{Action: action})
		assert.NoError(t, err)
	}
}

func TestNewGame(t *testing.T) {
	g, err := NewGame(logrus.StandardLogger(), []int64{1, 2, 3}, Options{})
	assert.Nil(t, g)
	assert.EqualError(t, err, "expected exactly 4 players, got 3")

	g, err = NewGame(logrus.StandardLogger(), []int64{1, 2, 3, 4}, Options{})
	assert.NoError(t, err)
	assert.Equal(t, PhaseWaiting, g.phase)
	assert.Equal(t, 100, g.options.BuyIn)
	assert.Equal(t, 10, g.options.Rounds)
	assert.Equal(t, "weizen", g.Name())
	assert.NotNil(t, g.LogChan())
}

func TestGame_readyStartsRound(t *testing.T) {
	g := testGame(t)

	_, _, err := g.Action(5, &playable.PayloadIn{Action: "ready"})
	assert.Equal(t, ErrPlayerNotSeated, err)

	allReady(t, g, "ready")

	assert.Equal(t, PhaseDealing, g.phase)
	assert.Equal(t, 1, g.roundNo)
	assert.NotNil(t, g.trumpCard)

	// card conservation: 52 distinct cards across the four hands
	seen := make(map[deck.Card]bool)
	for _, p := range g.participants {
		assert.Equal(t, cardsPerHand, len(p.hand))
		for _, c := range p.hand {
			seen[*c] = true
		}
	}
	assert.Len(t, seen, 52)
	assert.Equal(t, 0, g.deck.CardsLeft())

	// the trump indicator is the last card dealt, which lands with the dealer
	assert.True(t, g.participants[1].hand.HasCard(g.trumpCard))
}

func TestGame_readyWrongPhase(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")

	_, _, err := g.Action(1, &playable.PayloadIn{Action: "ready"})
	assert.Equal(t, ErrWrongPhase, err)
}

func TestGame_biddingTurnOrder(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")
	allReady(t, g, "dealReady")

	assert.Equal(t, PhaseBidding, g.phase)

	// left of the dealer declares first
	assert.Equal(t, int64(2), g.currentTurn())

	_, _, err := g.Action(3, bidPayload(BidPass))
	assert.Equal(t, ErrNotPlayersTurn, err)

	_, _, err = g.Action(2, bidPayload(BidPass))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), g.currentTurn())
}

func TestGame_bidValidation(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")
	allReady(t, g, "dealReady")

	_, _, err := g.Action(2, bidPayload("bogus"))
	assert.EqualError(t, err, "unknown bid type: bogus")

	// meegaan requires a prior vraag
	_, _, err = g.Action(2, bidPayload(BidMeegaan))
	assert.Equal(t, ErrMeegaanRequiresVraag, err)

	// a rejected bid doesn't consume the turn
	assert.Equal(t, int64(2), g.currentTurn())

	_, _, err = g.Action(2, bidPayload(BidVraag))
	assert.NoError(t, err)

	_, _, err = g.Action(3, bidPayload(BidMeegaan))
	assert.NoError(t, err)

	// only one meegaan per auction
	_, _, err = g.Action(4, bidPayload(BidMeegaan))
	assert.Equal(t, ErrMeegaanAlreadyTaken, err)
}

func TestGame_troelRequiresThreeAces(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")
	allReady(t, g, "dealReady")

	g.participants[2].hand = deck.CardsFromString("2c,3c,4c,5c")
	_, _, err := g.Action(2, bidPayload(BidTroel))
	assert.Equal(t, ErrTroelRequiresAces, err)

	g.participants[2].hand = deck.CardsFromString("14c,14d,14h,5c")
	_, _, err = g.Action(2, bidPayload(BidTroel))
	assert.NoError(t, err)
}

func TestGame_allPassVoidsRound(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")
	allReady(t, g, "dealReady")

	for _, pid := range []int64{2, 3, 4} {
		_, _, err := g.Action(pid, bidPayload(BidPass))
		assert.NoError(t, err)
	}

	// three passes void the round, but the deal still moves on
	assert.Equal(t, PhaseDealing, g.phase)
	assert.Equal(t, 2, g.roundNo)
	assert.Equal(t, 1, g.dealerIndex)
	for _, p := range g.participants {
		assert.Equal(t, 0, p.score)
	}
}

func TestGame_auctionIntoPlay(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")
	allReady(t, g, "dealReady")

	_, _, err := g.Action(2, bidPayload(BidVraag))
	assert.NoError(t, err)
	_, _, err = g.Action(3, bidPayload(BidMeegaan))
	assert.NoError(t, err)
	_, _, err = g.Action(4, bidPayload(BidPass))
	assert.NoError(t, err)
	_, _, err = g.Action(1, bidPayload(BidPass))
	assert.NoError(t, err)
	// third consecutive pass closes the auction
	_, _, err = g.Action(2, bidPayload(BidPass))
	assert.NoError(t, err)

	assert.Equal(t, PhasePlaying, g.phase)
	assert.Equal(t, BidVraag, g.contract.Type)
	assert.Equal(t, int64(2), g.contract.BidderID)
	assert.Equal(t, []int64{2, 3}, g.contract.Partners)
	assert.Equal(t, g.trumpCard.Suit, *g.contract.Trump)

	// the contract bidder leads the first trick
	assert.Equal(t, int64(2), g.currentTurn())
}

// setupPlayPhase puts the game directly into the playing phase with the
// given contract and per-player hands
func setupPlayPhase(t *testing.T, contract *Contract, hands map[int64]string) *Game {
	t.Helper()

	g := testGame(t)
	g.phase = PhasePlaying
	g.roundNo = 1
	g.contract = contract
	g.trick = newTrick()
	g.turnOrder = rotateLeft(g.seatOrder, indexOf(g.seatOrder, contract.BidderID))
	g.currentTurnIndex = 0

	for pid, s := range hands {
		g.participants[pid].hand = deck.CardsFromString(s)
	}

	return g
}

func TestGame_mustFollowSuit(t *testing.T) {
	trump := deck.Hearts
	g := setupPlayPhase(t, &Contract{Type: BidAlleenGaan, BidderID: 1, Partners: []int64{1}, Trump: &trump}, map[int64]string{
		1: "14s,2c",
		2: "5s,6h",
		3: "3s,4s",
		4: "9d,10d",
	})

	_, _, err := g.Action(1, playCardPayload("14s"))
	assert.NoError(t, err)

	// holding a spade, player 2 may not throw a heart
	_, _, err = g.Action(2, playCardPayload("6h"))
	assert.Equal(t, ErrMustFollowSuit, err)

	_, _, err = g.Action(2, playCardPayload("5s"))
	assert.NoError(t, err)

	_, _, err = g.Action(3, playCardPayload("3s"))
	assert.NoError(t, err)

	// out of spades, player 4 may slough anything
	_, _, err = g.Action(4, playCardPayload("9d"))
	assert.NoError(t, err)

	// player 1 took the trick and leads again
	assert.Equal(t, 1, g.participants[1].tricksWon)
	assert.Equal(t, int64(1), g.currentTurn())
	assert.Len(t, g.participants[1].captured, 4)
}

func TestGame_playCardErrors(t *testing.T) {
	trump := deck.Spades
	g := setupPlayPhase(t, &Contract{Type: BidAlleenGaan, BidderID: 1, Partners: []int64{1}, Trump: &trump}, map[int64]string{
		1: "14s",
		2: "5s",
		3: "3s",
		4: "9d",
	})

	_, _, err := g.Action(2, playCardPayload("5s"))
	assert.Equal(t, ErrNotPlayersTurn, err)

	_, _, err = g.Action(1, playCardPayload("2c"))
	assert.Equal(t, ErrCardNotInHand, err)

	_, _, err = g.Action(1, &playable.PayloadIn{Action: "playCard"})
	assert.Equal(t, ErrCardNotInHand, err)
}

func TestGame_lastTrickScoresRound(t *testing.T) {
	trump := deck.Hearts
	g := setupPlayPhase(t, &Contract{Type: BidVraag, BidderID: 1, Partners: []int64{1, 2}, Trump: &trump}, map[int64]string{
		1: "14s",
		2: "2h",
		3: "5s",
		4: "9s",
	})

	// twelve tricks already played
	g.participants[1].tricksWon = 4
	g.participants[2].tricksWon = 3
	g.participants[3].tricksWon = 3
	g.participants[4].tricksWon = 2

	_, _, err := g.Action(1, playCardPayload("14s"))
	assert.NoError(t, err)
	_, _, err = g.Action(2, playCardPayload("2h"))
	assert.NoError(t, err)
	_, _, err = g.Action(3, playCardPayload("5s"))
	assert.NoError(t, err)
	_, _, err = g.Action(4, playCardPayload("9s"))
	assert.NoError(t, err)

	// player 2 trumped in for the team's 8th trick
	assert.Equal(t, PhaseScoring, g.phase)
	assert.Equal(t, 4, g.participants[2].tricksWon)
	assert.Equal(t, 2, g.participants[1].score)
	assert.Equal(t, 2, g.participants[2].score)
	assert.Equal(t, -2, g.participants[3].score)
	assert.Equal(t, -2, g.participants[4].score)
	assert.True(t, g.scored)

	records := g.PopRoundRecords()
	assert.Len(t, records, 4)
	assert.Nil(t, g.PopRoundRecords())

	for _, r := range records {
		assert.Equal(t, 1, r.RoundNo)
		assert.Equal(t, BidVraag, r.ContractType)
		if r.PlayerID == 1 || r.PlayerID == 2 {
			assert.True(t, r.Success)
			assert.Equal(t, 2, r.ScoreDelta)
		} else {
			assert.False(t, r.Success)
			assert.Equal(t, -2, r.ScoreDelta)
		}
	}

	// scoring is applied exactly once
	g.startScoring()
	assert.Equal(t, 2, g.participants[1].score)
}

func TestGame_roundReadyAdvances(t *testing.T) {
	g := testGame(t)
	g.phase = PhaseScoring
	g.roundNo = 1

	_, _, err := g.Action(1, &playable.PayloadIn{Action: "roundReady"})
	assert.NoError(t, err)
	assert.Equal(t, PhaseScoring, g.phase)

	allReady(t, g, "roundReady")
	assert.Equal(t, PhaseDealing, g.phase)
	assert.Equal(t, 2, g.roundNo)
	assert.Equal(t, 1, g.dealerIndex)
}

func TestGame_finishesAfterLastRound(t *testing.T) {
	g := testGame(t)
	g.phase = PhaseScoring
	g.roundNo = g.options.Rounds

	allReady(t, g, "roundReady")
	assert.Equal(t, PhaseFinished, g.phase)

	_, _, err := g.Action(1, &playable.PayloadIn{Action: "roundReady"})
	assert.Equal(t, ErrWrongPhase, err)
}

func TestGame_voteCheat(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")
	allReady(t, g, "dealReady")

	_, _, err := g.Action(1, votePayload(true))
	assert.NoError(t, err)

	_, _, err = g.Action(1, votePayload(true))
	assert.Equal(t, ErrAlreadyVoted, err)

	_, _, err = g.Action(2, votePayload(true))
	assert.NoError(t, err)
	_, _, err = g.Action(3, votePayload(true))
	assert.NoError(t, err)
	_, _, err = g.Action(4, votePayload(false))
	assert.NoError(t, err)

	// majority vote voids the round and flags everyone
	assert.Equal(t, 2, g.roundNo)
	assert.Equal(t, PhaseDealing, g.phase)
	for _, p := range g.participants {
		assert.Equal(t, 1, p.cheatFlags)
	}
}

func TestGame_voteCheatFails(t *testing.T) {
	g := testGame(t)
	allReady(t, g, "ready")

	_, _, err := g.Action(1, votePayload(true))
	assert.NoError(t, err)
	_, _, err = g.Action(2, votePayload(true))
	assert.NoError(t, err)
	_, _, err = g.Action(3, votePayload(false))
	assert.NoError(t, err)
	_, _, err = g.Action(4, votePayload(false))
	assert.NoError(t, err)

	// a tie isn't a majority; votes clear and the round continues
	assert.Equal(t, 1, g.roundNo)
	assert.Empty(t, g.cheatVotes)
	for _, p := range g.participants {
		assert.Equal(t, 0, p.cheatFlags)
	}

	// players may vote again in a later attempt
	_, _, err = g.Action(1, votePayload(false))
	assert.NoError(t, err)
}

func TestGame_GetEndOfGameDetails(t *testing.T) {
	g := testGame(t)

	details, isOver := g.GetEndOfGameDetails()
	assert.Nil(t, details)
	assert.False(t, isOver)

	g.phase = PhaseFinished
	g.participants[1].score = 20
	g.participants[2].score = 20
	g.participants[3].score = -10
	g.participants[4].score = -30

	details, isOver = g.GetEndOfGameDetails()
	assert.True(t, isOver)

	// the pot of four buy-ins splits between the two top scorers
	assert.Equal(t, map[int64]int{1: 100, 2: 100, 3: -100, 4: -100}, details.BalanceAdjustments)

	total := 0
	for _, adj := range details.BalanceAdjustments {
		total += adj
	}
	assert.Equal(t, 0, total)
}

func TestGame_unknownAction(t *testing.T) {
	g := testGame(t)
	_, _, err := g.Action(1, &playable.PayloadIn{Action: "shenanigans"})
	assert.EqualError(t, err, "unknown action: shenanigans")
}
