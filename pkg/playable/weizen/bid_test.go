package weizen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBidType_priorityIndex(t *testing.T) {
	assert.Equal(t, 0, BidTroel.priorityIndex())
	assert.True(t, BidSoloSlim.priorityIndex() < BidAbondance.priorityIndex())
	assert.True(t, BidAbondance.priorityIndex() < BidVraag.priorityIndex())
	assert.True(t, BidVraag.priorityIndex() < BidAlleenGaan.priorityIndex())
	assert.Equal(t, len(bidPriority)-1, BidPass.priorityIndex())
	assert.Equal(t, len(bidPriority), BidType("bogus").priorityIndex())
}

func TestBidType_IsValid(t *testing.T) {
	for _, bid := range bidPriority {
		assert.True(t, bid.IsValid())
	}

	assert.False(t, BidType("bogus").IsValid())
	assert.False(t, BidType("").IsValid())
}

func TestBidType_HasTrump(t *testing.T) {
	assert.True(t, BidVraag.HasTrump())
	assert.True(t, BidTroel.HasTrump())
	assert.True(t, BidAbondanceInTroef.HasTrump())
	assert.True(t, BidSoloSlim.HasTrump())

	assert.False(t, BidMisere.HasTrump())
	assert.False(t, BidOpenMisere.HasTrump())
	assert.False(t, BidPico.HasTrump())
	assert.False(t, BidGeenDames.HasTrump())
}
