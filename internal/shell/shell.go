// Package shell is the interactive board analyzer behind `flow2048 analyze`:
// load or build a board, ask the engine for its decision, and play moves
// by hand or by engine while keeping an undo history.
package shell

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"

	"github.com/vovakirdan/flow2048/internal/games/t2048"
	"github.com/vovakirdan/flow2048/internal/solver"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("shell: exit")

// Options configures a Controller.
type Options struct {
	Policy solver.Policy
	Seed   int64
	Out    io.Writer   // defaults to stdout
	Logger *log.Logger // defaults to discard
	// Spawn4 is the chance that a tile spawned after a move is a 4.
	Spawn4 float64
}

// Controller holds one analysis session: the current board, its undo
// stack and a solver engine that keeps its orientation across moves.
type Controller struct {
	out     io.Writer
	logger  *log.Logger
	engine  *solver.Engine
	rng     *rand.Rand
	spawn4  float64
	spawn   bool
	board   solver.Board
	score   int
	history []snapshot
}

type snapshot struct {
	board solver.Board
	score int
}

// New creates a controller with an empty board.
func New(opts Options) (*Controller, error) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	engine, err := solver.NewEngine(opts.Policy, solver.WithSeed(opts.Seed), solver.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}

	return &Controller{
		out:    opts.Out,
		logger: opts.Logger,
		engine: engine,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		spawn4: opts.Spawn4,
		spawn:  true,
	}, nil
}

// Board returns the current board.
func (c *Controller) Board() solver.Board {
	return c.board
}

// SetBoard replaces the board, clears the undo history and resets the
// engine's orientation.
func (c *Controller) SetBoard(b solver.Board) error {
	if err := b.Validate(); err != nil {
		return err
	}
	c.board = b
	c.score = 0
	c.history = c.history[:0]
	c.engine.Reset()
	return nil
}

// Execute runs one command line. Unknown commands and bad arguments are
// returned as errors; ErrExit means the session is over.
func (c *Controller) Execute(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("cannot parse line: %w", err)
	}
	if len(fields) == 0 {
		return nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, try `help`", name)
	}
	c.logger.Debug("command", "name", name, "args", args)
	return cmd.run(c, args)
}

// Loop reads commands with line editing until EOF, interrupt on an empty
// line, or an exit command.
func (c *Controller) Loop() error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            "\033[33mflow2048>\033[0m ",
		HistoryFile:       historyFile(),
		AutoComplete:      completer(),
		EOFPrompt:         "exit",
		InterruptPrompt:   "^C",
		HistorySearchFold: true,
		Stdout:            c.out,
	})
	if err != nil {
		return fmt.Errorf("shell: cannot start line editor: %w", err)
	}
	defer l.Close()

	c.showMessage("flow2048 analyzer. Type `help` for commands.")

	for {
		line, err := l.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}

		err = c.Execute(strings.TrimSpace(line))
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			c.showError(err)
		}
	}
}

// historyFile is kept next to the user config, or in the temp dir when
// there is no home directory.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "flow2048_history")
	}
	dir := filepath.Join(home, ".flow2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return filepath.Join(os.TempDir(), "flow2048_history")
	}
	return filepath.Join(dir, "analyze_history")
}

func (c *Controller) showMessage(msg string) {
	io.WriteString(c.out, msg)
	io.WriteString(c.out, "\n")
}

func (c *Controller) showError(err error) {
	c.showMessage("Error: " + err.Error())
}

func (c *Controller) showBoard() {
	c.showMessage(strings.TrimRight(c.board.String(), "\n"))
	c.showMessage(fmt.Sprintf("score %d  max %d  open %d  code %s",
		c.score, c.board.MaxTile(), c.board.EmptyCount(), boardCode(c.board)))
}

func boardCode(b solver.Board) string {
	code, err := solver.EncodeBoard(b)
	if err != nil {
		return "-"
	}
	return code
}

// push saves the board for undo.
func (c *Controller) push() {
	c.history = append(c.history, snapshot{board: c.board, score: c.score})
}

// slide applies d to the board, then spawns a tile when spawning is on.
func (c *Controller) slide(d solver.Direction) error {
	next, gained, ok := t2048.Slide(c.board, d)
	if !ok {
		return fmt.Errorf("%s does not move any tile", d)
	}
	c.push()
	c.score += gained
	c.board = next
	if c.spawn {
		c.spawnRandom()
	}
	return nil
}

func (c *Controller) spawnRandom() {
	empty := t2048.EmptyCells(c.board)
	if len(empty) == 0 {
		return
	}
	val := 2
	if c.rng.Float64() < c.spawn4 {
		val = 4
	}
	c.board[empty[c.rng.Intn(len(empty))]] = val
}
