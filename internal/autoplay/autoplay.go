// Package autoplay plays batches of headless games with the solver and
// summarizes how well it did.
package autoplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/flow2048/internal/core"
	"github.com/vovakirdan/flow2048/internal/games/t2048"
	"github.com/vovakirdan/flow2048/internal/solver"
)

// Options configures a batch.
type Options struct {
	Games   int
	Workers int
	// Seed seeds game 0; game i uses Seed+i, so any game can be replayed alone.
	Seed     int64
	Spawn4   float64
	MaxMoves int // 0 means no limit
	Policy   solver.Policy
	Logger   *log.Logger
}

// GameResult is the outcome of one game.
type GameResult struct {
	Index   int
	Seed    int64
	Score   int
	MaxTile int
	Moves   int
	Board   solver.Board
	Code    string // Hex code of the final board, empty past 32768
	// Truncated is set when MaxMoves stopped the game.
	Truncated bool
}

// Run plays opts.Games games on at most opts.Workers goroutines. Every
// game gets its own engine. Results are returned in game order; on
// cancellation the games finished so far are returned with the context error.
func Run(ctx context.Context, opts Options) ([]GameResult, error) {
	if opts.Games < 1 {
		return nil, fmt.Errorf("autoplay: games must be positive, got %d", opts.Games)
	}
	if err := opts.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("autoplay: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]GameResult, opts.Games)
	done := make([]bool, opts.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))

	start := time.Now()
	for i := range opts.Games {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := PlayOne(gctx, i, opts.Seed+int64(i), opts)
			if err != nil {
				return err
			}
			results[i] = res
			done[i] = true
			logger.Debug("game finished", "game", i, "score", res.Score, "max", res.MaxTile, "moves", res.Moves)
			return nil
		})
	}
	err := g.Wait()

	finished := make([]GameResult, 0, opts.Games)
	for i, ok := range done {
		if ok {
			finished = append(finished, results[i])
		}
	}
	logger.Info("batch finished", "games", len(finished), "elapsed", time.Since(start).Round(time.Millisecond))

	return finished, err
}

// PlayOne plays a single endless game to the end with a fresh engine.
func PlayOne(ctx context.Context, index int, seed int64, opts Options) (GameResult, error) {
	eng, err := solver.NewEngine(opts.Policy, solver.WithSeed(seed), solver.WithLogger(opts.Logger))
	if err != nil {
		return GameResult{}, fmt.Errorf("autoplay: %w", err)
	}

	game := t2048.NewEndless(t2048.WithSpawn4(opts.Spawn4), t2048.WithPolicy(opts.Policy))
	game.Reset(core.RuntimeConfig{Seed: seed})

	res := GameResult{Index: index, Seed: seed}
	for !game.Over() {
		if opts.MaxMoves > 0 && game.Moves() >= opts.MaxMoves {
			res.Truncated = true
			break
		}
		if game.Moves()%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		d, err := eng.Recommend(game.FlatBoard())
		if errors.Is(err, solver.ErrNoMoves) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("autoplay: game %d: %w", index, err)
		}
		if !game.ApplyDirection(d) {
			return res, fmt.Errorf("autoplay: game %d: solver chose %s, which does not move\n%s", index, d, game.FlatBoard())
		}
	}

	res.Score = game.State().Score
	res.Moves = game.Moves()
	res.Board = game.FlatBoard()
	res.MaxTile = res.Board.MaxTile()
	res.Code = game.BoardCode()
	return res, nil
}
