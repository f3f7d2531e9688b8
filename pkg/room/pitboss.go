package room

import (
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching players to games
type PitBoss struct {
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client
	retire     chan string
}

// NewPitBoss returns a new dispatch object
func NewPitBoss() *PitBoss {
	return &PitBoss{
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		retire:     make(chan string, 256),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.room.UUID]
			if !found {
				dealer = NewDealer(p, client.room)
				dealer.StartShift()
				p.dealers[client.room.UUID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.room.UUID]
			if !found {
				logrus.WithField("uuid", client.room.UUID).WithField("type", "exception").Error("room not found")
				continue
			}

			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.room.UUID)
			}
		case uuid := <-p.retire:
			// an empty room kept alive for the reconnect window finally expired
			dealer, found := p.dealers[uuid]
			if !found {
				continue
			}

			if !dealer.HasClients() {
				logrus.WithField("uuid", uuid).Debug("retiring idle dealer")
				dealer.EndShift()
				delete(p.dealers, uuid)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

// RetireDealer asks the pit boss to shut down the dealer for a room if it's still empty
func (p *PitBoss) RetireDealer(uuid string) {
	p.retire <- uuid
}
