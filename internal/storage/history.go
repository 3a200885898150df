package storage

import (
	"fmt"
	"time"
)

// StateEntry is one recorded position of an interactive game.
type StateEntry struct {
	SessionID string
	Move      int
	Board     string // Hex board code
	Score     int
	CreatedAt time.Time
}

// SaveState records a position. Rows of the same session at or after
// e.Move are replaced, so history written after an undo continues from the
// restored move.
func (s *Store) SaveState(e StateEntry) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(
		"DELETE FROM state_history WHERE session_id = ? AND move >= ?",
		e.SessionID, e.Move,
	); err != nil {
		return fmt.Errorf("storage: cannot trim history: %w", err)
	}
	if _, err = tx.Exec(
		"INSERT INTO state_history (session_id, move, board, score) VALUES (?, ?, ?, ?)",
		e.SessionID, e.Move, e.Board, e.Score,
	); err != nil {
		return fmt.Errorf("storage: cannot save state: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit state: %w", err)
	}
	return nil
}

// History returns a session's positions in move order.
func (s *Store) History(sessionID string) ([]StateEntry, error) {
	rows, err := s.db.Query(
		`SELECT session_id, move, board, score, created_at
		 FROM state_history
		 WHERE session_id = ?
		 ORDER BY move`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	var out []StateEntry
	for rows.Next() {
		var e StateEntry
		var createdAt any
		if err := rows.Scan(&e.SessionID, &e.Move, &e.Board, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan state: %w", err)
		}
		e.CreatedAt = scanTime(createdAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
