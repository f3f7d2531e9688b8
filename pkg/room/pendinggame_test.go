package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"weizen-server/pkg/playable"
)

func TestNewPendingGame(t *testing.T) {
	c := client(5)

	pg, err := newPendingGame(c, &playable.PayloadIn{
		Action:  "createGame",
		Subject: "weizen",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Weizen", pg.Name)
	assert.Equal(t, int64(5), pg.PlayerID)
	assert.True(t, pg.Start.After(time.Now()))
	pg.cancel()
}

func TestNewPendingGame_unknownGame(t *testing.T) {
	c := client(5)

	pg, err := newPendingGame(c, &playable.PayloadIn{
		Action:  "createGame",
		Subject: "canasta",
	})
	assert.EqualError(t, err, "no factory with name: canasta")
	assert.Nil(t, pg)
}
