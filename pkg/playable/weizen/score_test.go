package weizen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weizen-server/pkg/deck"
)

// scoringParticipants builds four participants with the given trick counts
func scoringParticipants(tricks map[int64]int) map[int64]*participant {
	participants := make(map[int64]*participant, len(tricks))
	for pid, n := range tricks {
		p := newParticipant(pid)
		p.tricksWon = n
		participants[pid] = p
	}

	return participants
}

func TestScoreVraagMeegaan(t *testing.T) {
	contract := &Contract{Type: BidVraag, BidderID: 1, Partners: []int64{1, 2}}

	// 8 team tricks pay 2 per partner
	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 5, 2: 3, 3: 3, 4: 2}))
	assert.Equal(t, map[int64]int{1: 2, 2: 2, 3: -2, 4: -2}, deltas)

	// a clean sweep pays 14
	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 7, 2: 6, 3: 0, 4: 0}))
	assert.Equal(t, map[int64]int{1: 14, 2: 14, 3: -14, 4: -14}, deltas)

	// 5 team tricks fail for 2 per partner
	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 3, 2: 2, 3: 4, 4: 4}))
	assert.Equal(t, map[int64]int{1: -2, 2: -2, 3: 2, 4: 2}, deltas)
}

func TestScoreAlleenGaan(t *testing.T) {
	contract := &Contract{Type: BidAlleenGaan, BidderID: 1, Partners: []int64{1}}

	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 5, 2: 3, 3: 3, 4: 2}))
	assert.Equal(t, map[int64]int{1: 6, 2: -2, 3: -2, 4: -2}, deltas)

	// the gain caps at 30
	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 13, 2: 0, 3: 0, 4: 0}))
	assert.Equal(t, map[int64]int{1: 30, 2: -10, 3: -10, 4: -10}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 4, 2: 3, 3: 3, 4: 3}))
	assert.Equal(t, map[int64]int{1: -6, 2: 2, 3: 2, 4: 2}, deltas)
}

func TestScoreGeenDames(t *testing.T) {
	contract := &Contract{Type: BidGeenDames, BidderID: 1, Partners: []int64{1}}
	participants := scoringParticipants(map[int64]int{1: 4, 2: 4, 3: 4, 4: 1})
	participants[1].captured = deck.CardsFromString("12c,12h,2c")
	participants[2].captured = deck.CardsFromString("12d,3c")
	participants[4].captured = deck.CardsFromString("12s")

	deltas := scoreContract(contract, participants)
	assert.Equal(t, map[int64]int{1: -8, 2: -4, 3: 16, 4: -4}, deltas)
}

func TestScorePico(t *testing.T) {
	contract := &Contract{Type: BidPico, BidderID: 1, Partners: []int64{1}}

	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 0, 2: 5, 3: 4, 4: 4}))
	assert.Equal(t, map[int64]int{1: 15, 2: -5, 3: -5, 4: -5}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 0, 2: 0, 3: 7, 4: 6}))
	assert.Equal(t, map[int64]int{1: 10, 2: 10, 3: -5, 4: -5}, deltas)

	// three players with no tricks is a wash
	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 0, 2: 0, 3: 0, 4: 13}))
	assert.Equal(t, map[int64]int{1: 0, 2: 0, 3: 0, 4: 0}, deltas)
}

func TestScoreMisere(t *testing.T) {
	contract := &Contract{Type: BidMisere, BidderID: 2, Partners: []int64{2}}

	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 5, 2: 0, 3: 4, 4: 4}))
	assert.Equal(t, map[int64]int{1: -5, 2: 15, 3: -5, 4: -5}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 5, 2: 1, 3: 4, 4: 3}))
	assert.Equal(t, map[int64]int{1: 5, 2: -15, 3: 5, 4: 5}, deltas)
}

func TestScoreTroel(t *testing.T) {
	contract := &Contract{Type: BidTroel, BidderID: 1, Partners: []int64{1, 2}}

	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 7, 2: 6, 3: 0, 4: 0}))
	assert.Equal(t, map[int64]int{1: 28, 2: 28, 3: -28, 4: -28}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 6, 2: 4, 3: 2, 4: 1}))
	assert.Equal(t, map[int64]int{1: 8, 2: 8, 3: -8, 4: -8}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 4, 2: 4, 3: 3, 4: 2}))
	assert.Equal(t, map[int64]int{1: 4, 2: 4, 3: -4, 4: -4}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 4, 2: 3, 3: 3, 4: 3}))
	assert.Equal(t, map[int64]int{1: -4, 2: -4, 3: 4, 4: 4}, deltas)
}

func TestScoreAbondance(t *testing.T) {
	contract := &Contract{Type: BidAbondance, BidderID: 3, Partners: []int64{3}}

	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 1, 2: 1, 3: 9, 4: 2}))
	assert.Equal(t, map[int64]int{1: -4, 2: -4, 3: 12, 4: -4}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 0, 2: 1, 3: 11, 4: 1}))
	assert.Equal(t, map[int64]int{1: -6, 2: -6, 3: 18, 4: -6}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 0, 2: 0, 3: 13, 4: 0}))
	assert.Equal(t, map[int64]int{1: -10, 2: -10, 3: 30, 4: -10}, deltas)

	// failure costs 12 and pays each opponent 4
	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 2, 2: 2, 3: 8, 4: 1}))
	assert.Equal(t, map[int64]int{1: 4, 2: 4, 3: -12, 4: 4}, deltas)
}

func TestScoreSoloSlim(t *testing.T) {
	contract := &Contract{Type: BidSoloSlim, BidderID: 4, Partners: []int64{4}}

	deltas := scoreContract(contract, scoringParticipants(map[int64]int{1: 0, 2: 0, 3: 0, 4: 13}))
	assert.Equal(t, map[int64]int{1: -13, 2: -13, 3: -13, 4: 39}, deltas)

	deltas = scoreContract(contract, scoringParticipants(map[int64]int{1: 1, 2: 0, 3: 0, 4: 12}))
	assert.Equal(t, map[int64]int{1: 13, 2: 13, 3: 13, 4: -39}, deltas)
}
