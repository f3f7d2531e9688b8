package gamefactory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weizen-server/pkg/playable"
)

func TestGet(t *testing.T) {
	factory, err := Get("weizen")
	assert.NoError(t, err)
	assert.NotNil(t, factory)

	factory, err = Get("euchre")
	assert.EqualError(t, err, "no factory with name: euchre")
	assert.Nil(t, factory)
}

func TestWeizenFactory_Details(t *testing.T) {
	factory, _ := Get("weizen")

	name, buyIn, err := factory.Details(playable.AdditionalData{})
	assert.NoError(t, err)
	assert.Equal(t, "Weizen", name)
	assert.Equal(t, 100, buyIn)

	name, buyIn, err = factory.Details(playable.AdditionalData{"buyIn": float64(250)})
	assert.NoError(t, err)
	assert.Equal(t, "Weizen", name)
	assert.Equal(t, 250, buyIn)

	_, _, err = factory.Details(playable.AdditionalData{"buyIn": float64(-1)})
	assert.EqualError(t, err, "buyIn must be greater than zero")

	_, _, err = factory.Details(playable.AdditionalData{"rounds": float64(0)})
	assert.EqualError(t, err, "rounds must be greater than zero")
}

func TestWeizenFactory_CreateGame(t *testing.T) {
	factory, _ := Get("weizen")

	game, err := factory.CreateGame(nil, []int64{1, 2, 3, 4}, playable.AdditionalData{})
	assert.NoError(t, err)
	assert.Equal(t, "weizen", game.Name())

	game, err = factory.CreateGame(nil, []int64{1, 2, 3}, playable.AdditionalData{})
	assert.EqualError(t, err, "expected exactly 4 players, got 3")
	assert.Nil(t, game)
}
