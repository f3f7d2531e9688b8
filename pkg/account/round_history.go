package account

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"weizen-server/pkg/db"
)

const roundHistoryColumns = `
round_history.id,
round_history.game_id,
round_history.player_id,
round_history.round_no,
round_history.contract_type,
round_history.success,
round_history.score_delta,
round_history.created`

// RoundHistory is a record in the append-only `round_history` table
type RoundHistory struct {
	ID           int64     `json:"id"`
	GameID       int64     `json:"gameId"`
	PlayerID     int64     `json:"playerId"`
	RoundNo      int       `json:"roundNo"`
	ContractType string    `json:"contractType"`
	Success      bool      `json:"success"`
	ScoreDelta   int       `json:"scoreDelta"`
	Created      time.Time `json:"created"`
}

// SaveRoundHistory appends one round outcome per player to the history.
// Records are written in a single transaction; the history is never updated
// or deleted.
func (g *Game) SaveRoundHistory(ctx context.Context, records []*RoundHistory) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO round_history (game_id, player_id, round_no, contract_type, success, score_delta)
VALUES ($1, $2, $3, $4, $5, $6)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		rollback(tx)
		return err
	}

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, g.ID, r.PlayerID, r.RoundNo, r.ContractType, r.Success, r.ScoreDelta); err != nil {
			rollback(tx)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		logrus.WithError(err).Error("could not commit round history")
		return err
	}

	return nil
}

// GetRoundHistory returns the player's round history, most recent first
func (p *Player) GetRoundHistory(ctx context.Context, offset int64, limit int) ([]*RoundHistory, error) {
	const query = `
SELECT ` + roundHistoryColumns + `
FROM round_history
WHERE player_id = $1
ORDER BY id DESC
OFFSET $2
LIMIT $3`

	rows, err := db.Instance().QueryContext(ctx, query, p.ID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*RoundHistory, 0)
	for rows.Next() {
		var r RoundHistory
		if err := rows.Scan(&r.ID, &r.GameID, &r.PlayerID, &r.RoundNo, &r.ContractType, &r.Success, &r.ScoreDelta, &r.Created); err != nil {
			return nil, err
		}

		records = append(records, &r)
	}

	return records, nil
}
