package account

import (
	"context"
	"time"

	"weizen-server/pkg/db"
)

const seatColumns = `
players_rooms.id,
players_rooms.player_id,
players_rooms.room_uuid,
players_rooms.is_room_admin,
players_rooms.can_start,
players_rooms.can_terminate,
players_rooms.balance,
players_rooms.active,
players_rooms.created,
players_rooms.updated`

// Seat represents a row in the players_rooms table
type Seat struct {
	Player       *Player   `json:"player"`
	PlayerID     int64     `json:"playerId"`
	RoomUUID     string    `json:"roomUuid"`
	ID           int64     `json:"id"`
	IsRoomAdmin  bool      `json:"isRoomAdmin"`
	CanStart     bool      `json:"canStart"`
	CanTerminate bool      `json:"canTerminate"`
	Balance      int       `json:"balance"`
	Active       bool      `json:"active"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func getSeatByRow(row db.Scanner) (*Seat, error) {
	var p Player
	var s Seat

	if err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.IsSiteAdmin, &p.Verified, &p.passwordHash, &p.Created, &p.Updated,
		&s.ID, &s.PlayerID, &s.RoomUUID, &s.IsRoomAdmin, &s.CanStart, &s.CanTerminate,
		&s.Balance, &s.Active, &s.Created, &s.Updated); err != nil {
		return nil, err
	}

	s.Player = &p

	return &s, nil
}

// AdjustBalance will adjust the balance of the seated player
// The adjustment is written through the adjust_balance function so the
// balance_log stays consistent with the running balance.
func (s *Seat) AdjustBalance(ctx context.Context, byAmount int, reason string, game *Game) error {
	const query = `SELECT adjust_balance($1, $2, $3, $4, $5)`
	var gameID *int64
	if game != nil {
		gameID = &game.ID
	}

	_, err := db.Instance().ExecContext(ctx, query, s.ID, s.Balance, byAmount, gameID, reason)
	if err != nil {
		return err
	}

	s.Balance += byAmount

	return nil
}

// SetActive sets the active state for the seat in the database
func (s *Seat) SetActive(ctx context.Context, active bool) error {
	const query = `
UPDATE players_rooms
SET active = $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE id = $2`
	execContext, err := db.Instance().ExecContext(ctx, query, active, s.ID)
	if err != nil {
		return err
	}

	if ra, _ := execContext.RowsAffected(); ra > 0 {
		s.Active = active
	}

	return nil
}

// Save will save non-balance values
func (s *Seat) Save(ctx context.Context) error {
	const query = `
UPDATE players_rooms
SET is_room_admin = $1, can_start = $2, can_terminate = $3, updated = (NOW() AT TIME ZONE 'utc')
WHERE id = $4`

	_, err := db.Instance().ExecContext(ctx, query, s.IsRoomAdmin, s.CanStart, s.CanTerminate, s.ID)
	return err
}
