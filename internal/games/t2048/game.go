package t2048

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flow2048/internal/core"
	"github.com/vovakirdan/flow2048/internal/registry"
	"github.com/vovakirdan/flow2048/internal/solver"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// DefaultAutoInterval is the number of ticks between solver moves in auto mode.
const DefaultAutoInterval = 6

// Hint is the solver's last recommendation for the current board.
type Hint struct {
	Direction solver.Direction
	Reason    string
}

// historyEntry is one position in the undo stack.
type historyEntry struct {
	code  string
	score int
}

// Game implements the 2048 puzzle game with a solver assist.
type Game struct {
	mode Mode
	rng  *rand.Rand
	tick uint64

	score         int
	moves         int
	board         Board
	levelIndex    int // Current level (0-indexed)
	startLevel    int // Level for the next Reset, 1-indexed, 0 for none
	currentTarget int // Current tile target
	spawn4Prob    float64
	spawn4Fixed   bool // spawn4Prob set by an option, levels don't override it

	// Solver assist
	policy       solver.Policy
	engine       *solver.Engine
	logger       *log.Logger
	hint         *Hint
	status       string
	auto         bool
	autoStart    bool
	autoInterval int
	autoTicks    int
	history      []historyEntry

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	levelClearTicks int // Animation ticks for level clear
}

// Option configures a Game.
type Option func(*Game)

// WithSpawn4 fixes the probability that a spawned tile is a 4.
func WithSpawn4(p float64) Option {
	return func(g *Game) {
		g.spawn4Prob = p
		g.spawn4Fixed = true
	}
}

// WithPolicy sets the solver policy used for hints and autoplay.
func WithPolicy(p solver.Policy) Option {
	return func(g *Game) {
		g.policy = p
	}
}

// WithLogger sets the logger handed to the solver engine.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		g.logger = l
	}
}

// WithAutoInterval sets how many ticks pass between auto moves.
func WithAutoInterval(ticks int) Option {
	return func(g *Game) {
		if ticks > 0 {
			g.autoInterval = ticks
		}
	}
}

// WithAutoplay starts every game with solver autoplay running.
func WithAutoplay() Option {
	return func(g *Game) {
		g.autoStart = true
	}
}

// WithStartLevel starts the first campaign game at level (1-indexed).
// Restarts go back to level 1.
func WithStartLevel(level int) Option {
	return func(g *Game) {
		g.startLevel = level
	}
}

func newGame(mode Mode, opts []Option) *Game {
	g := &Game{
		mode:         mode,
		policy:       solver.DefaultPolicy(),
		logger:       log.New(io.Discard),
		autoInterval: DefaultAutoInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// New creates a new campaign mode 2048 game.
func New(opts ...Option) *Game {
	return newGame(ModeCampaign, opts)
}

// NewEndless creates a new endless mode 2048 game.
func NewEndless(opts ...Option) *Game {
	return newGame(ModeEndless, opts)
}

func init() {
	registry.Register("2048", func() registry.Game {
		return New()
	})
	registry.Register("2048_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "2048_endless"
	}
	return "2048"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "2048 (Endless)"
	}
	return "2048"
}

// Reset initializes/restarts the game. The solver forgets its orientation.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.levelClearTicks = 0
	g.hint = nil
	g.status = ""
	g.auto = g.autoStart
	g.autoTicks = 0
	g.history = g.history[:0]
	g.board = Board{}

	g.resetEngine(cfg.Seed)

	// Apply selected start level (campaign only)
	if g.mode == ModeCampaign && g.startLevel > 0 && g.startLevel <= LevelCount() {
		g.levelIndex = g.startLevel - 1
		g.startLevel = 0
	} else {
		g.levelIndex = 0
	}

	g.loadLevel()

	g.spawnTile()
	g.spawnTile()
	g.pushHistory()

	g.checkScreenSize()
}

// resetEngine builds a fresh engine for a new game.
func (g *Game) resetEngine(seed int64) {
	eng, err := solver.NewEngine(g.policy, solver.WithSeed(seed), solver.WithLogger(g.logger))
	if err != nil {
		g.logger.Warn("invalid solver policy, using defaults", "error", err)
		g.policy = solver.DefaultPolicy()
		eng, _ = solver.NewEngine(g.policy, solver.WithSeed(seed), solver.WithLogger(g.logger))
	}
	g.engine = eng
}

// loadLevel sets up the current level parameters.
func (g *Game) loadLevel() {
	if g.mode == ModeEndless {
		g.currentTarget = 0 // No target in endless
		if !g.spawn4Fixed {
			g.spawn4Prob = 0.10
		}
		return
	}

	level := GetLevel(g.levelIndex)
	if level == nil {
		level = GetLevel(LevelCount() - 1)
	}

	g.currentTarget = level.Target
	if !g.spawn4Fixed {
		g.spawn4Prob = level.Spawn4
	}
}

// spawnTile spawns a new tile (2 or 4) in a random empty cell.
func (g *Game) spawnTile() {
	empty := EmptyCells(g.board)
	if len(empty) == 0 {
		return
	}

	cell := empty[g.rng.Intn(len(empty))]

	value := 2
	if g.rng.Float64() < g.spawn4Prob {
		value = 4
	}

	g.board[cell] = value
}

// Resize updates the screen size without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minScreenW || g.screenH < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Restart is handled by the platform
	if in.Has(core.ActionRestart) && (g.gameOver || g.won) {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionUndo) {
		g.Undo()
		return core.StepResult{State: g.State()}
	}

	if g.levelCleared {
		g.levelClearTicks++
		// Auto-advance after 2 seconds (120 ticks at 60fps)
		if g.levelClearTicks >= 120 {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	if g.gameOver || g.won {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionHint):
		g.auto = false
		g.RequestHint()
	case in.Has(core.ActionStep):
		g.auto = false
		g.solverMove()
		if !g.gameOver && !g.levelCleared {
			g.RequestHint()
		}
	case in.Has(core.ActionAuto):
		g.auto = !g.auto
		g.autoTicks = 0
	case in.Has(core.ActionUp):
		g.ApplyDirection(solver.DirUp)
	case in.Has(core.ActionDown):
		g.ApplyDirection(solver.DirDown)
	case in.Has(core.ActionLeft):
		g.ApplyDirection(solver.DirLeft)
	case in.Has(core.ActionRight):
		g.ApplyDirection(solver.DirRight)
	case g.auto:
		g.autoTicks++
		if g.autoTicks >= g.autoInterval {
			g.autoTicks = 0
			g.solverMove()
		}
	}

	return core.StepResult{State: g.State()}
}

// RequestHint asks the solver for the current board and stores the answer.
func (g *Game) RequestHint() (Hint, error) {
	dec, err := g.engine.Analyze(g.board)
	if err != nil {
		g.hint = nil
		g.status = "no hint: " + err.Error()
		return Hint{}, err
	}
	h := Hint{Direction: dec.Direction, Reason: dec.Reason}
	g.hint = &h
	g.status = fmt.Sprintf("hint %s %s (%s)", h.Direction.Arrow(), h.Direction, h.Reason)
	return h, nil
}

// solverMove plays the pending hint, or a fresh recommendation.
func (g *Game) solverMove() bool {
	var dir solver.Direction
	if g.hint != nil {
		dir = g.hint.Direction
	} else {
		d, err := g.engine.Recommend(g.board)
		if err != nil {
			g.auto = false
			if errors.Is(err, solver.ErrNoMoves) {
				g.gameOver = true
			}
			g.status = "solver: " + err.Error()
			return false
		}
		dir = d
	}
	if !g.ApplyDirection(dir) {
		// A stale or illegal hint stops autoplay rather than looping.
		g.auto = false
		g.status = fmt.Sprintf("solver move %s had no effect", dir)
		return false
	}
	return true
}

// ApplyDirection slides the board, spawns a tile and updates the game
// state. It reports whether the board changed.
func (g *Game) ApplyDirection(dir solver.Direction) bool {
	if g.gameOver || g.won || g.levelCleared {
		return false
	}

	next, gained, changed := Slide(g.board, dir)
	if !changed {
		return false
	}

	g.board = next
	g.score += gained
	g.moves++
	g.hint = nil
	g.status = ""

	if g.mode == ModeCampaign && g.currentTarget > 0 && g.board.MaxTile() >= g.currentTarget {
		g.levelCleared = true
		g.levelClearTicks = 0
		g.auto = false
		g.pushHistory()
		return true
	}

	g.spawnTile()
	g.pushHistory()

	if IsGameOver(g.board) {
		g.gameOver = true
		g.auto = false
	}
	return true
}

func (g *Game) pushHistory() {
	code, err := solver.EncodeBoard(g.board)
	if err != nil {
		// Tiles past 32768 have no single-digit code.
		return
	}
	g.history = append(g.history, historyEntry{code: code, score: g.score})
}

// Undo restores the position before the last move. It needs two entries on
// the stack: the current position and the one to return to.
func (g *Game) Undo() bool {
	if len(g.history) < 2 || g.won {
		return false
	}
	prev := g.history[len(g.history)-2]
	b, err := solver.DecodeBoard(prev.code)
	if err != nil {
		return false
	}
	g.history = g.history[:len(g.history)-1]
	g.board = b
	g.score = prev.score
	g.moves = max(g.moves-1, 0)
	g.gameOver = false
	g.levelCleared = false
	g.levelClearTicks = 0
	g.auto = false
	g.hint = nil
	g.status = "undo"
	return true
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0

	if g.levelIndex >= LevelCount()-1 {
		g.won = true
		return
	}

	g.levelIndex++
	g.loadLevel()
	// The board carries over with a new target; the spawn withheld on
	// clearing happens now.
	g.spawnTile()
	g.pushHistory()
	if IsGameOver(g.board) {
		g.gameOver = true
	}
}

// FlatBoard returns the row-major board the solver consumes.
func (g *Game) FlatBoard() solver.Board {
	return g.board
}

// BoardCode returns the hex code of the current board, or "" when a tile
// is too large to encode.
func (g *Game) BoardCode() string {
	code, err := solver.EncodeBoard(g.board)
	if err != nil {
		return ""
	}
	return code
}

// Moves returns the number of slides applied this game.
func (g *Game) Moves() int {
	return g.moves
}

// Over reports whether the game has ended, by losing or by finishing the campaign.
func (g *Game) Over() bool {
	return g.gameOver || g.won
}

// Hint returns the pending recommendation, if any.
func (g *Game) Hint() (Hint, bool) {
	if g.hint == nil {
		return Hint{}, false
	}
	return *g.hint, true
}

// Auto reports whether solver autoplay is running.
func (g *Game) Auto() bool {
	return g.auto
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
		Moves:    g.moves,
		Auto:     g.auto,
	}
}
