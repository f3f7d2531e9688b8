package weizen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuction_allPass(t *testing.T) {
	a := newAuction([]int64{1, 2, 3, 4})
	assert.False(t, a.isClosed())

	a.recordPass(1)
	a.recordPass(2)
	assert.False(t, a.isClosed())

	a.recordPass(3)
	assert.True(t, a.isClosed())
	assert.Nil(t, a.winningBid())
}

func TestAuction_winningBidByPriority(t *testing.T) {
	a := newAuction([]int64{1, 2, 3, 4})
	a.recordBid(1, BidVraag)
	a.recordBid(2, BidAbondance)
	a.recordPass(3)
	a.recordPass(4)
	a.recordPass(1)
	assert.True(t, a.isClosed())

	// abondance outranks vraag even though vraag was declared first
	winner := a.winningBid()
	assert.Equal(t, int64(2), winner.PlayerID)
	assert.Equal(t, BidAbondance, winner.Type)
}

func TestAuction_bidResetsPassStreak(t *testing.T) {
	a := newAuction([]int64{1, 2, 3, 4})
	a.recordPass(1)
	a.recordPass(2)
	a.recordBid(3, BidMisere)
	assert.Equal(t, 0, a.passesInARow)
	assert.False(t, a.isClosed())

	// once the last opponent passes, only the declarer remains active
	a.recordPass(4)
	assert.True(t, a.isClosed())

	winner := a.winningBid()
	assert.Equal(t, BidMisere, winner.Type)
}

func TestAuction_reentry(t *testing.T) {
	a := newAuction([]int64{1, 2, 3, 4})
	a.recordPass(1)
	assert.Len(t, a.activeBidders, 3)

	a.recordBid(1, BidVraag)
	assert.Len(t, a.activeBidders, 4)
}

func TestAuction_findBid(t *testing.T) {
	a := newAuction([]int64{1, 2, 3, 4})
	a.recordBid(1, BidVraag)
	a.recordBid(2, BidMeegaan)

	assert.True(t, a.hasBid(BidVraag))
	assert.False(t, a.hasBid(BidTroel))

	entry := a.findBid(BidMeegaan)
	assert.Equal(t, int64(2), entry.PlayerID)
	assert.Nil(t, a.findBid(BidSoloSlim))
}
