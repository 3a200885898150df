package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Mode    string // "campaign" or "endless"
	Level   int    // Current level (1-indexed for display)
	Target  int    // Current target tile value, 0 in endless mode
	Score   int
	Moves   int
	Board   Board
	Code    string // Hex board code, empty past 32768
	MaxTile int
	Auto    bool
	Hint    string // Pending hint direction, empty when none
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelCleared:
		state = StateLevelCleared
	}

	var hint string
	if g.hint != nil {
		hint = g.hint.Direction.String()
	}

	return Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		Level:   g.levelIndex + 1,
		Target:  g.currentTarget,
		Score:   g.score,
		Moves:   g.moves,
		Board:   g.board,
		Code:    g.BoardCode(),
		MaxTile: g.board.MaxTile(),
		Auto:    g.auto,
		Hint:    hint,
		State:   state,
	}
}
