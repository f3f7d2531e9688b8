package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand_AddCard(t *testing.T) {
	h := Hand{}
	h.AddCard(CardFromString("2c"))
	h.AddCard(CardFromString("3d"))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "2c,3d", h.String())
}

func TestHand_HasCard(t *testing.T) {
	h := Hand(CardsFromString("2c,3d,14s"))
	assert.True(t, h.HasCard(CardFromString("3d")))
	assert.False(t, h.HasCard(CardFromString("3c")))
}

func TestHand_HasSuit(t *testing.T) {
	h := Hand(CardsFromString("2c,3d,14s"))
	assert.True(t, h.HasSuit(Diamonds))
	assert.False(t, h.HasSuit(Hearts))
}

func TestHand_CountRank(t *testing.T) {
	h := Hand(CardsFromString("14c,14d,14s,2h"))
	assert.Equal(t, 3, h.CountRank(Ace))
	assert.Equal(t, 1, h.CountRank(2))
	assert.Equal(t, 0, h.CountRank(King))
}

func TestHand_Discard(t *testing.T) {
	h := Hand(CardsFromString("2c,3d,14s"))
	assert.Equal(t, 1, h.Discard(CardFromString("3d")))
	assert.Equal(t, "2c,14s", h.String())
	assert.Equal(t, 0, h.Discard(CardFromString("3d")))
}

func TestHand_Clone(t *testing.T) {
	h := Hand(CardsFromString("2c,3d"))
	h2 := h.Clone()
	h2.AddCard(CardFromString("4h"))
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 3, h2.Len())
}
