package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rocketscienceinc/dontwakethemonster/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, result *entity.GameResult) error
	ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error)
}

type dbResult struct {
	db *sql.DB
}

// NewResultRepository keeps finished games in the game_results table.
func NewResultRepository(db *sql.DB) ResultRepository {
	return &dbResult{db: db}
}

func (that *dbResult) Save(ctx context.Context, result *entity.GameResult) error {
	winners, err := json.Marshal(result.Winners)
	if err != nil {
		return fmt.Errorf("could not marshal winners: %w", err)
	}

	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("could not marshal scores: %w", err)
	}

	characters, err := json.Marshal(result.Characters)
	if err != nil {
		return fmt.Errorf("could not marshal characters: %w", err)
	}

	const query = `INSERT INTO game_results
		(session_id, replay_count, player_count, traps_triggered, winners, scores, characters, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = that.db.ExecContext(ctx, query,
		result.SessionID,
		result.ReplayCount,
		result.PlayerCount,
		result.TrapsTriggered,
		string(winners),
		string(scores),
		string(characters),
		result.FinishedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert game result: %w", err)
	}

	return nil
}

func (that *dbResult) ListRecent(ctx context.Context, limit int) ([]*entity.GameResult, error) {
	const query = `SELECT session_id, replay_count, player_count, traps_triggered, winners, scores, characters, finished_at
		FROM game_results ORDER BY finished_at DESC, id DESC LIMIT ?`

	rows, err := that.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query game results: %w", err)
	}
	defer rows.Close()

	var results []*entity.GameResult
	for rows.Next() {
		var (
			result                      entity.GameResult
			winners, scores, characters string
			finishedAt                  int64
		)

		err = rows.Scan(
			&result.SessionID,
			&result.ReplayCount,
			&result.PlayerCount,
			&result.TrapsTriggered,
			&winners,
			&scores,
			&characters,
			&finishedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game result: %w", err)
		}

		if err = json.Unmarshal([]byte(winners), &result.Winners); err != nil {
			return nil, fmt.Errorf("failed to unmarshal winners: %w", err)
		}

		if err = json.Unmarshal([]byte(scores), &result.Scores); err != nil {
			return nil, fmt.Errorf("failed to unmarshal scores: %w", err)
		}

		if err = json.Unmarshal([]byte(characters), &result.Characters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal characters: %w", err)
		}

		result.FinishedAt = time.UnixMilli(finishedAt).UTC()
		results = append(results, &result)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game results: %w", err)
	}

	return results, nil
}
