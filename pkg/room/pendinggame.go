package room

import (
	"time"

	"weizen-server/internal/config"
	"weizen-server/pkg/playable"
	"weizen-server/pkg/room/gamefactory"
)

const defaultSecondsUntilStart = time.Second * 10

type pendingGame struct {
	Name     string    `json:"name"`
	BuyIn    int       `json:"buyIn"`
	Start    time.Time `json:"start"`
	PlayerID int64     `json:"playerId"`
	client   *Client
	message  *playable.PayloadIn
	factory  gamefactory.GameFactory
	timer    *time.Timer
}

func newPendingGame(c *Client, msg *playable.PayloadIn) (*pendingGame, error) {
	factory, err := gamefactory.Get(msg.Subject)
	if err != nil {
		return nil, err
	}

	name, buyIn, err := factory.Details(msg.AdditionalData)
	if err != nil {
		return nil, err
	}

	start := time.Now().Add(secondsUntilStart())
	timer := time.NewTimer(time.Until(start))

	return &pendingGame{
		client:   c,
		message:  msg,
		factory:  factory,
		Name:     name,
		BuyIn:    buyIn,
		Start:    start,
		PlayerID: c.player.ID,
		timer:    timer,
	}, nil
}

func (p *pendingGame) cancel() {
	p.timer.Stop()
}

func secondsUntilStart() time.Duration {
	if delay := config.Instance().StartGameDelay; delay > 0 {
		return time.Second * time.Duration(delay)
	}

	return defaultSecondsUntilStart
}
