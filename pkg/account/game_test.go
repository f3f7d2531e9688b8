package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func playerRoomAndGame() (*Player, *Room, *Game) {
	p, room := playerAndRoom()
	game, err := room.CreateGame(cbg, "weizen")
	if err != nil {
		panic(err)
	}

	return p, room, game
}

func TestGame_EndGame(t *testing.T) {
	player, room, game := playerRoomAndGame()

	g2, err := GameByID(cbg, game.ID)
	assert.NoError(t, err)
	assert.NotNil(t, g2)
	assert.Nil(t, g2.data)
	assert.True(t, g2.Ended.IsZero())

	before := time.Now()
	err = game.EndGame(cbg, map[string]string{"foo": "bar"}, map[int64]int{player.ID: 123})
	assert.NoError(t, err)

	seat, _ := player.GetSeat(cbg, room)
	assert.Equal(t, 123, seat.Balance)

	g2, err = GameByID(cbg, game.ID)
	assert.NoError(t, err)
	assert.Equal(t, "bar", g2.data.(map[string]interface{})["foo"])
	assert.True(t, g2.Ended.After(before))
}

func TestGame_SaveRoundHistory(t *testing.T) {
	player, _, game := playerRoomAndGame()

	history, err := player.GetRoundHistory(cbg, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, history, 0)

	records := []*RoundHistory{
		{PlayerID: player.ID, RoundNo: 1, ContractType: "vraag", Success: true, ScoreDelta: 2},
		{PlayerID: player.ID, RoundNo: 2, ContractType: "misere", Success: false, ScoreDelta: -15},
	}
	assert.NoError(t, game.SaveRoundHistory(cbg, records))

	// no-op on an empty batch
	assert.NoError(t, game.SaveRoundHistory(cbg, nil))

	history, err = player.GetRoundHistory(cbg, 0, 10)
	assert.NoError(t, err)
	assert.Len(t, history, 2)

	// most recent first
	assert.Equal(t, 2, history[0].RoundNo)
	assert.Equal(t, "misere", history[0].ContractType)
	assert.False(t, history[0].Success)
	assert.Equal(t, -15, history[0].ScoreDelta)
	assert.Equal(t, game.ID, history[0].GameID)

	assert.Equal(t, 1, history[1].RoundNo)
	assert.True(t, history[1].Success)
}
