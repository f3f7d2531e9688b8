package room

import (
	"weizen-server/pkg/account"
	"weizen-server/pkg/playable"
)

type clientStateSeat struct {
	*account.Seat
	IsConnected bool `json:"isConnected"`
	IsSeated    bool `json:"isSeated"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
