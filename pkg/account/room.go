package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"weizen-server/pkg/db"
	"weizen-server/pkg/token"
)

// roomCreationCoolDown is how long non-admins must wait before creating another room
const roomCreationCoolDown = time.Minute

// joinCodeLength is the length of the shareable room code
const joinCodeLength = 8

const roomColumns = `
rooms.uuid,
rooms.code,
rooms.name,
rooms.player_id,
rooms.created`

// Room is a lobby where four players gather for a game
// A room has many players and can have many games
type Room struct {
	UUID string `json:"uuid"`
	// Code is a short shareable code other players use to join
	Code string `json:"code"`
	Name string `json:"name"`
	// PlayerID is who created the room
	PlayerID int64     `json:"playerId"`
	Created  time.Time `json:"created"`
}

// ErrPlayerNotInRoom happens when user is not a member of the room
var ErrPlayerNotInRoom = errors.New("player is not a member of the room")

// CreateRoom creates a new room
func (p *Player) CreateRoom(ctx context.Context, name string) (*Room, error) {
	if err := p.canCreateRoom(ctx); err != nil {
		return nil, err
	}

	code, err := token.Generate(joinCodeLength)
	if err != nil {
		return nil, err
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	u := uuid.New().String()
	const query = `
INSERT INTO rooms (uuid, code, name, player_id)
VALUES ($1, $2, $3, $4)
RETURNING created
`
	var created time.Time
	row := tx.QueryRowContext(ctx, query, u, code, name, p.ID)
	if err := row.Scan(&created); err != nil {
		rollback(tx)
		return nil, err
	}

	const query2 = `
INSERT INTO players_rooms (player_id, room_uuid, is_room_admin)
VALUES ($1, $2, true)`
	if _, err = tx.ExecContext(ctx, query2, p.ID, u); err != nil {
		rollback(tx)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &Room{
		UUID:     u,
		Code:     code,
		Name:     name,
		Created:  created,
		PlayerID: p.ID,
	}, nil
}

// canCreateRoom will see if the user is allowed to create a room
// returns nil if the user can create a room
func (p *Player) canCreateRoom(ctx context.Context) error {
	// site admins can always create a room
	if p.IsSiteAdmin {
		return nil
	}

	const query = `
SELECT COUNT(*)
FROM rooms
WHERE player_id = $1
  AND created >= $2 AT TIME ZONE 'UTC'`

	row := db.Instance().QueryRowContext(ctx, query, p.ID, time.Now().In(time.UTC).Add(roomCreationCoolDown*-1))
	var count int
	if err := row.Scan(&count); err != nil {
		return err
	}

	if count > 0 {
		return UserError("you must wait before you create another room")
	}

	return nil
}

func getRoomByRow(row db.Scanner, additionalColumns ...interface{}) (*Room, error) {
	var r Room
	columns := []interface{}{
		&r.UUID,
		&r.Code,
		&r.Name,
		&r.PlayerID,
		&r.Created,
	}

	if len(additionalColumns) > 0 {
		columns = append(columns, additionalColumns...)
	}

	if err := row.Scan(columns...); err != nil {
		return nil, err
	}

	return &r, nil
}

// GetRoomByUUID returns a room by its UUID
func GetRoomByUUID(ctx context.Context, uuid string) (*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getRoomByRow(row)
}

// GetRoomByCode returns a room by its shareable join code
func GetRoomByCode(ctx context.Context, code string) (*Room, error) {
	const query = `
SELECT ` + roomColumns + `
FROM rooms
WHERE code = $1`

	row := db.Instance().QueryRowContext(ctx, query, code)
	return getRoomByRow(row)
}

// Reload will refresh the data from the database
func (r *Room) Reload(ctx context.Context) error {
	room, err := GetRoomByUUID(ctx, r.UUID)
	if err != nil {
		return err
	}

	*r = *room
	return nil
}

// GetSeats returns all players seated in the room
func (r *Room) GetSeats(ctx context.Context) ([]*Seat, error) {
	const query = `
SELECT ` + playerColumns + `, ` + seatColumns + `
FROM players_rooms
INNER JOIN players ON players_rooms.player_id = players.id
WHERE players_rooms.room_uuid = $1
ORDER BY players_rooms.id`

	rows, err := db.Instance().QueryContext(ctx, query, r.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*Seat, 0)
	for rows.Next() {
		seat, err := getSeatByRow(rows)
		if err != nil {
			return nil, err
		}

		records = append(records, seat)
	}

	return records, nil
}

// GetActiveSeatsShifted returns the active seats with the dealer button shifted
// by the number of games the room has played
func (r *Room) GetActiveSeatsShifted(ctx context.Context) ([]*Seat, error) {
	seats, err := r.GetSeats(ctx)
	if err != nil {
		return nil, err
	}

	activeSeats := make([]*Seat, 0, len(seats))
	for _, seat := range seats {
		if seat.Active {
			activeSeats = append(activeSeats, seat)
		}
	}

	if len(activeSeats) == 0 {
		return []*Seat{}, nil
	}

	count, err := r.GetGamesCount(ctx)
	if err != nil {
		return nil, err
	}

	offset := int(count % int64(len(activeSeats)))
	if offset == 0 {
		return activeSeats, nil
	}

	tail := activeSeats[offset:]
	head := activeSeats[:offset]
	return append(tail, head...), nil
}

// CreateGame will create a new game for the room
func (r *Room) CreateGame(ctx context.Context, gameType string) (*Game, error) {
	const query = `
INSERT INTO games (room_uuid, game_type)
VALUES ($1, $2)
RETURNING ` + gamesColumns

	row := db.Instance().QueryRowContext(ctx, query, r.UUID, gameType)
	return gameByRow(row)
}

// GetGamesCount returns the number of games played by the room
func (r *Room) GetGamesCount(ctx context.Context) (int64, error) {
	const query = `
SELECT COUNT(id)
FROM games
WHERE room_uuid = $1`

	var count int64
	if err := db.Instance().QueryRowContext(ctx, query, r.UUID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		logrus.WithError(err).Error("could not rollback transaction")
	}
}
