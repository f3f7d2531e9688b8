package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♣", CardFromString("2c").String())
	assert.Equal(t, "10♢", CardFromString("10d").String())
	assert.Equal(t, "J♡", CardFromString("11h").String())
	assert.Equal(t, "Q♠", CardFromString("12s").String())
	assert.Equal(t, "K♣", CardFromString("13c").String())
	assert.Equal(t, "A♠", CardFromString("14s").String())
}

func TestCard_Equal(t *testing.T) {
	assert.True(t, CardFromString("5h").Equal(&Card{Rank: 5, Suit: Hearts}))
	assert.False(t, CardFromString("5h").Equal(CardFromString("5s")))
	assert.False(t, CardFromString("5h").Equal(CardFromString("6h")))
}

func TestCardFromString(t *testing.T) {
	assert.Nil(t, CardFromString(""))
	assert.Equal(t, &Card{Rank: 14, Suit: Spades}, CardFromString("14s"))
	assert.PanicsWithValue(t, "could not parse card: 15s", func() {
		CardFromString("15s")
	})
}

func TestCardsFromString(t *testing.T) {
	assert.Equal(t, []*Card{}, CardsFromString(""))

	cards := CardsFromString("2c,14s")
	assert.Equal(t, 2, len(cards))
	assert.Equal(t, &Card{Rank: 2, Suit: Clubs}, cards[0])
	assert.Equal(t, &Card{Rank: 14, Suit: Spades}, cards[1])
}

func TestCardsToString(t *testing.T) {
	assert.Equal(t, "", CardToString(nil))
	assert.Equal(t, "2c,14s", CardsToString(CardsFromString("2c,14s")))
}
