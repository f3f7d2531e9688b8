package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"weizen-server/internal/config"
	"weizen-server/pkg/account"
	"weizen-server/pkg/playable"
	"weizen-server/pkg/playable/weizen"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// roundRecorder is implemented by games that report per-round outcomes
type roundRecorder interface {
	PopRoundRecords() []*weizen.RoundRecord
}

// Dealer is responsible for controlling the game in a single room
type Dealer struct {
	pitBoss *PitBoss
	room    *account.Room
	clients map[*Client]bool
	lock    sync.RWMutex
	game    playable.Playable
	record  *account.Game

	pendingGame *pendingGame
	logMessages []*playable.LogMessage

	// reconnect holds a timer per disconnected player; if the timer fires
	// before they return, their seat is marked inactive
	reconnect   map[int64]*time.Timer
	lingerTimer *time.Timer

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, room *account.Room) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		room:          room,
		clients:       make(map[*Client]bool),
		reconnect:     make(map[int64]*time.Timer),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.room.UUID,
		"name": d.room.Name,
	})

	log.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendPlayerData()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameEnded()
				d.sendPlayerData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true

	if t, ok := d.reconnect[client.player.ID]; ok {
		t.Stop()
		delete(d.reconnect, client.player.ID)
	}

	if d.lingerTimer != nil {
		d.lingerTimer.Stop()
		d.lingerTimer = nil
	}
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if len(d.logMessages) > 0 {
			client.Send <- &playable.Response{
				Key:  "logs",
				Data: d.logMessages,
			}
		}

		if d.game == nil {
			return
		}

		gs, err := d.game.GetPlayerState(client.player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			return
		}

		client.Send <- gs
	}
}

// RemoveClient removes a client
// If the room is empty and has no game in progress, true is returned and the
// dealer can end its shift. With a game in progress, the disconnected player
// keeps their seat for the reconnect window.
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	gameInProgress := d.game != nil

	playerConnected := false
	for c := range d.clients {
		if c.player.ID == client.player.ID {
			playerConnected = true
			break
		}
	}

	if gameInProgress && !playerConnected {
		d.startReconnectTimer(client.player)
	}

	if nClients == 0 && gameInProgress {
		uuid := d.room.UUID
		d.lingerTimer = time.AfterFunc(reconnectTimeout(), func() {
			d.pitBoss.RetireDealer(uuid)
		})
	}
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return !gameInProgress
}

// startReconnectTimer must be called with the lock held
func (d *Dealer) startReconnectTimer(player *account.Player) {
	if t, ok := d.reconnect[player.ID]; ok {
		t.Stop()
	}

	d.reconnect[player.ID] = time.AfterFunc(reconnectTimeout(), func() {
		d.execInRunLoop <- func() {
			d.forfeitSeat(player)
		}
	})
}

// forfeitSeat marks the seat of a player who never came back as inactive
// Note: this must only be called from within the run loop
func (d *Dealer) forfeitSeat(player *account.Player) {
	d.lock.Lock()
	delete(d.reconnect, player.ID)
	d.lock.Unlock()

	ctx := context.Background()
	seat, err := player.GetSeat(ctx, d.room)
	if err != nil {
		logrus.WithError(err).WithField("player", player.ID).Error("could not get seat")
		return
	}

	if err := seat.SetActive(ctx, false); err != nil {
		logrus.WithError(err).WithField("player", player.ID).Error("could not deactivate seat")
		return
	}

	d.addLogMessages(playable.SimpleLogMessageSlice(player.ID, "{} did not reconnect in time and lost their seat"))
	d.stateChanged <- stateClientEvent
}

func reconnectTimeout() time.Duration {
	return time.Second * time.Duration(config.Instance().Game.ReconnectTimeout)
}

// HasClients returns true if at least one client is still connected
func (d *Dealer) HasClients() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return len(d.clients) > 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key: "gameEnded",
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.game == nil {
		// should not happen
		logrus.Error("XXX game state changed, but there's no active game")
		return
	}

	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.player.ID)
		if err != nil {
			logrus.WithError(err).Error("could not get player state")
			continue
		}

		client.Send <- data
	}
}

func (d *Dealer) sendPlayerData() {
	seats, err := d.room.GetSeats(context.Background())
	if err != nil {
		logrus.WithField("uuid", d.room.UUID).WithError(err).Error("could not get seats")
		return
	}

	connectedClients := make(map[int64]*account.Player)
	for _, client := range d.Clients() {
		connectedClients[client.player.ID] = client.player
	}

	csSeats := make(map[int64]*clientStateSeat)
	for _, seat := range seats {
		_, isConnected := connectedClients[seat.PlayerID]
		delete(connectedClients, seat.PlayerID)
		csSeats[seat.PlayerID] = &clientStateSeat{
			Seat:        seat,
			IsConnected: isConnected,
			IsSeated:    true,
		}
	}

	for _, player := range connectedClients {
		csSeats[player.ID] = &clientStateSeat{
			Seat: &account.Seat{
				Player:   player,
				PlayerID: player.ID,
				RoomUUID: d.room.UUID,
			},
			IsConnected: true,
			IsSeated:    false,
		}
	}

	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key:  "clientState",
			Data: csSeats,
		}
	}
}

// canAdminRoom will send an error message to the client if they are not a room admin or site admin
// If they are an appropriate admin, true is returned, otherwise false is returned
func canAdminRoom(ctx string, c *Client) bool {
	if c.player.IsSiteAdmin {
		return true
	}

	seat, err := c.player.GetSeat(context.Background(), c.room)
	if err != nil {
		c.Send <- newErrorResponse(ctx, err)
		return false
	}

	if !seat.IsRoomAdmin {
		c.Send <- newErrorResponse(ctx, errors.New("you do not have the appropriate permission"))
		return false
	}

	return true
}

// canStartGame is like canAdminRoom, but also allows seats with the start permission
func canStartGame(ctx string, c *Client) bool {
	if c.player.IsSiteAdmin {
		return true
	}

	seat, err := c.player.GetSeat(context.Background(), c.room)
	if err != nil {
		c.Send <- newErrorResponse(ctx, err)
		return false
	}

	if !seat.IsRoomAdmin && !seat.CanStart {
		c.Send <- newErrorResponse(ctx, errors.New("you do not have the appropriate permission"))
		return false
	}

	return true
}

// canTerminateGame is like canAdminRoom, but also allows seats with the terminate permission
func canTerminateGame(ctx string, c *Client) bool {
	if c.player.IsSiteAdmin {
		return true
	}

	seat, err := c.player.GetSeat(context.Background(), c.room)
	if err != nil {
		c.Send <- newErrorResponse(ctx, err)
		return false
	}

	if !seat.IsRoomAdmin && !seat.CanTerminate {
		c.Send <- newErrorResponse(ctx, errors.New("you do not have the appropriate permission"))
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "createGame":
		if !canStartGame(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			if err := d.scheduleGame(c, msg); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- playable.OK(msg.Context)
		}
	case "cancelGame":
		if !canStartGame(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			if d.pendingGame == nil {
				c.Send <- newErrorResponse(msg.Context, errors.New("no game is scheduled"))
				return
			}

			d.pendingGame.cancel()
			d.pendingGame = nil

			for _, client := range d.Clients() {
				client.Send <- &playable.Response{Key: "scheduledGame"}
			}

			c.Send <- playable.OK(msg.Context)
		}
	case "terminateGame":
		if !canTerminateGame(msg.Context, c) {
			return
		}

		d.execInRunLoop <- func() {
			d.setGame(nil)
			d.record = nil
			d.stateChanged <- stateGameEnded
		}

		c.Send <- playable.OK(msg.Context)
	case "roomAdmin":
		d.execInRunLoop <- func() {
			if !canAdminRoom(msg.Context, c) {
				return
			}

			isRoomAdmin, ok := msg.AdditionalData.GetBool("isRoomAdmin")
			if !ok {
				c.Send <- newErrorResponse(msg.Context, errors.New("isRoomAdmin is not boolean"))
				return
			}

			playerID, ok := msg.AdditionalData.GetInt("playerId")
			if !ok {
				c.Send <- newErrorResponse(msg.Context, errors.New("could not obtain playerId"))
				return
			}

			player, err := account.GetPlayerByID(context.Background(), int64(playerID))
			if err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			seat, err := player.GetSeat(context.Background(), c.room)
			if err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			seat.IsRoomAdmin = isRoomAdmin
			if err := seat.Save(context.Background()); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- playable.OK(msg.Context)
			d.stateChanged <- stateClientEvent
		}
	case "playerStatus":
		d.execInRunLoop <- func() {
			var seat *account.Seat
			var err error

			// setting the status for another player requires room admin
			playerID, ok := msg.AdditionalData.GetInt("playerId")
			if ok {
				if !canAdminRoom(msg.Context, c) {
					return
				}

				var player *account.Player
				player, err = account.GetPlayerByID(context.Background(), int64(playerID))
				if err != nil {
					c.Send <- newErrorResponse(msg.Context, err)
					return
				}

				seat, err = player.GetSeat(context.Background(), c.room)
			} else {
				seat, err = c.player.GetSeat(context.Background(), c.room)
			}

			if err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			isActive, ok := msg.AdditionalData.GetBool("active")
			if !ok {
				c.Send <- newErrorResponse(msg.Context, errors.New("active is not boolean"))
				return
			}

			if err := seat.SetActive(context.Background(), isActive); err != nil {
				c.Send <- newErrorResponse(msg.Context, err)
				return
			}

			c.Send <- playable.OK(msg.Context)
			d.stateChanged <- stateClientEvent
		}
	default:
		d.execInRunLoop <- func() {
			d.performGameAction(c, msg)
		}
	}
}

// performGameAction routes an action to the active game
// Note: this must only be called from within the run loop
func (d *Dealer) performGameAction(c *Client, msg *playable.PayloadIn) {
	game := d.game
	if game == nil {
		logrus.WithField("msg", msg).Warn("unknown message")
		c.Send <- newErrorResponse(msg.Context, errors.New("there is no active game"))
		return
	}

	action, updateState, err := game.Action(c.player.ID, msg)
	if err != nil {
		logrus.WithError(err).WithField("client", c.String()).Error("could not perform action")
		c.Send <- newErrorResponse(msg.Context, err)
		return
	}

	if action != nil {
		action.Context = msg.Context
		c.Send <- action
	}

	if updateState {
		d.stateChanged <- stateGameEvent
	}

	d.flushRoundRecords()

	if details, isOver := game.GetEndOfGameDetails(); isOver {
		d.endGame(c, msg.Context, details)
	}
}

// scheduleGame queues a new game for the room after the start delay
// Note: this must only be called from within the run loop
func (d *Dealer) scheduleGame(c *Client, msg *playable.PayloadIn) error {
	if d.game != nil {
		return errors.New("a game is already in progress")
	}

	if d.pendingGame != nil {
		return errors.New("a game is already scheduled")
	}

	pg, err := newPendingGame(c, msg)
	if err != nil {
		return err
	}

	d.pendingGame = pg
	go func() {
		<-pg.timer.C
		d.execInRunLoop <- d.startPendingGame
	}()

	for _, client := range d.Clients() {
		client.Send <- &playable.Response{
			Key:  "scheduledGame",
			Data: pg,
		}
	}

	return nil
}

// startPendingGame deals the scheduled game once the start delay elapses
// Note: this must only be called from within the run loop
func (d *Dealer) startPendingGame() {
	pg := d.pendingGame
	d.pendingGame = nil

	if pg == nil || d.game != nil {
		return
	}

	if err := d.createGame(pg); err != nil {
		logrus.WithError(err).WithField("uuid", d.room.UUID).Error("could not create game")
		pg.client.Send <- newErrorResponse(pg.message.Context, err)
	}
}

// Note: this must only be called from within the run loop
func (d *Dealer) createGame(pg *pendingGame) error {
	ctx := context.Background()

	seats, err := d.room.GetActiveSeatsShifted(ctx)
	if err != nil {
		return err
	}

	playerIDs := make([]int64, 0, len(seats))
	for _, seat := range seats {
		playerIDs = append(playerIDs, seat.PlayerID)
	}

	logger := logrus.WithFields(logrus.Fields{
		"uuid": d.room.UUID,
		"game": pg.message.Subject,
	})

	game, err := pg.factory.CreateGame(logger, playerIDs, pg.message.AdditionalData)
	if err != nil {
		return err
	}

	record, err := d.room.CreateGame(ctx, game.Name())
	if err != nil {
		return err
	}

	d.setGame(game)
	d.record = record

	go d.forwardLogMessages(game)

	d.stateChanged <- stateGameEvent
	return nil
}

// forwardLogMessages relays log messages from the game to the connected clients
func (d *Dealer) forwardLogMessages(game playable.Playable) {
	for {
		select {
		case messages := <-game.LogChan():
			d.execInRunLoop <- func() {
				d.addLogMessages(messages)
				for _, client := range d.Clients() {
					client.Send <- &playable.Response{
						Key:  "logs",
						Data: messages,
					}
				}
			}
		case <-d.close:
			return
		}
	}
}

// flushRoundRecords persists any completed-round outcomes the game reported
// Note: this must only be called from within the run loop
func (d *Dealer) flushRoundRecords() {
	recorder, ok := d.game.(roundRecorder)
	if !ok || d.record == nil {
		return
	}

	records := recorder.PopRoundRecords()
	if len(records) == 0 {
		return
	}

	history := make([]*account.RoundHistory, len(records))
	for i, record := range records {
		history[i] = &account.RoundHistory{
			PlayerID:     record.PlayerID,
			RoundNo:      record.RoundNo,
			ContractType: string(record.ContractType),
			Success:      record.Success,
			ScoreDelta:   record.ScoreDelta,
		}
	}

	if err := d.record.SaveRoundHistory(context.Background(), history); err != nil {
		logrus.WithError(err).WithField("game", d.record.ID).Error("could not save round history")
	}
}

// endGame settles the finished game and broadcasts the result
// Note: this must only be called from within the run loop
func (d *Dealer) endGame(c *Client, ctx string, details *playable.GameOverDetails) {
	if d.record != nil {
		if err := d.record.EndGame(context.Background(), details.Log, details.BalanceAdjustments); err != nil {
			logrus.WithError(err).Error("could not save game")
			c.Send <- newErrorResponse(ctx, err)
			return
		}
	}

	d.setGame(nil)
	d.record = nil
	d.stateChanged <- stateGameEnded
}

// setGame guards the game pointer; RemoveClient reads it off the run loop
func (d *Dealer) setGame(game playable.Playable) {
	d.lock.Lock()
	d.game = game
	d.lock.Unlock()
}
