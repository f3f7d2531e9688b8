package room

import (
	"fmt"

	"github.com/gorilla/websocket"

	"weizen-server/pkg/account"
	"weizen-server/pkg/playable"
)

// Client represents a single connection to a room
type Client struct {
	Conn *websocket.Conn
	Send chan *playable.Response
	// Close is a signal to the websocket handler to close the connection with the provided reason
	Close      chan string
	CloseError error

	dealer *Dealer
	player *account.Player
	room   *account.Room
}

// NewClient returns a new client instance
func NewClient(conn *websocket.Conn, player *account.Player, room *account.Room) *Client {
	return &Client{
		Conn:   conn,
		Send:   make(chan *playable.Response, 256),
		Close:  make(chan string),
		player: player,
		room:   room,
	}
}

func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.player.Email, c.room.UUID)
}

// ReceivedMessage is called when the client receives a message from the websocket connection
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	c.dealer.ReceivedMessage(c, msg)
}
