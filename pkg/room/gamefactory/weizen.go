package gamefactory

import (
	"errors"

	"github.com/sirupsen/logrus"

	"weizen-server/internal/config"
	"weizen-server/pkg/playable"
	"weizen-server/pkg/playable/weizen"
)

type weizenFactory struct{}

func (w weizenFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	opts, err := w.options(additionalData)
	if err != nil {
		return nil, err
	}

	return weizen.NewGame(logger, playerIDs, opts)
}

func (w weizenFactory) Details(additionalData playable.AdditionalData) (string, int, error) {
	opts, err := w.options(additionalData)
	if err != nil {
		return "", 0, err
	}

	return "Weizen", opts.BuyIn, nil
}

func (w weizenFactory) options(additionalData playable.AdditionalData) (weizen.Options, error) {
	cfg := config.Instance().Game

	opts := weizen.Options{
		BuyIn:  cfg.BuyIn,
		Rounds: cfg.Rounds,
	}

	if buyIn, ok := additionalData.GetInt("buyIn"); ok {
		if buyIn <= 0 {
			return weizen.Options{}, errors.New("buyIn must be greater than zero")
		}

		opts.BuyIn = buyIn
	}

	if rounds, ok := additionalData.GetInt("rounds"); ok {
		if rounds <= 0 {
			return weizen.Options{}, errors.New("rounds must be greater than zero")
		}

		opts.Rounds = rounds
	}

	return opts, nil
}
