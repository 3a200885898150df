package storage

import (
	"fmt"
	"time"
)

// Run is one stored autoplay batch.
type Run struct {
	ID        string // uuid
	Policy    string
	Games     int
	Spawn4    float64
	Seed      int64
	MeanScore float64
	StdDev    float64
	BestScore int
	BestTile  int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunGame is one game of a batch.
type RunGame struct {
	RunID   string
	Index   int
	Seed    int64
	Score   int
	MaxTile int
	Moves   int
	Board   string // Final board as a hex code
}

// SaveRun stores a batch and its games in one transaction.
func (s *Store) SaveRun(run Run, games []RunGame) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.Exec(
		`INSERT INTO autoplay_runs
		 (id, policy, games, spawn4, seed, mean_score, stddev, best_score, best_tile, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Policy, run.Games, run.Spawn4, run.Seed,
		run.MeanScore, run.StdDev, run.BestScore, run.BestTile, run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run %s: %w", run.ID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO autoplay_games (run_id, game_index, seed, score, max_tile, moves, board)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare game insert: %w", err)
	}
	defer stmt.Close()

	for _, g := range games {
		if _, err = stmt.Exec(run.ID, g.Index, g.Seed, g.Score, g.MaxTile, g.Moves, g.Board); err != nil {
			return fmt.Errorf("storage: cannot save game %d of run %s: %w", g.Index, run.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run %s: %w", run.ID, err)
	}
	return nil
}

// RecentRuns returns the newest batches first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, policy, games, spawn4, seed, mean_score, stddev, best_score, best_tile, duration_ms, created_at
		 FROM autoplay_runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ms int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Policy, &r.Games, &r.Spawn4, &r.Seed, &r.MeanScore, &r.StdDev,
			&r.BestScore, &r.BestTile, &ms, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		r.CreatedAt = scanTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunGames returns the games of one batch in index order.
func (s *Store) RunGames(runID string) ([]RunGame, error) {
	rows, err := s.db.Query(
		`SELECT run_id, game_index, seed, score, max_tile, moves, board
		 FROM autoplay_games
		 WHERE run_id = ?
		 ORDER BY game_index`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run games: %w", err)
	}
	defer rows.Close()

	var games []RunGame
	for rows.Next() {
		var g RunGame
		if err := rows.Scan(&g.RunID, &g.Index, &g.Seed, &g.Score, &g.MaxTile, &g.Moves, &g.Board); err != nil {
			return nil, fmt.Errorf("storage: cannot scan run game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return games, nil
}
