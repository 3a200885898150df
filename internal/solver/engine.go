package solver

import (
	"errors"
	"io"
	"math/rand"
	"strconv"

	"github.com/charmbracelet/log"
)

// ErrNoMoves is returned when no slide changes the board.
var ErrNoMoves = errors.New("solver: no legal moves")

// Decision is the full record of one Analyze call.
type Decision struct {
	Direction Direction
	Transform Transform
	// Board is the input expressed in the active transform.
	Board      Board
	Candidates []Candidate
	// Scores holds each candidate's default flow score, in candidate order.
	Scores  []int
	Chosen  int
	Profile string
	Reason  string
}

// Engine recommends moves for one game. It keeps the orientation chosen on
// earlier turns, so a new game must start with Reset. An Engine is not safe
// for concurrent use.
type Engine struct {
	policy    Policy
	transform Transform
	oriented  bool
	rng       *rand.Rand
	logger    *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for orientation and profile switches.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSeed seeds the generator that picks the fallback direction on a board
// with no legal moves.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// NewEngine returns an engine using p. The policy is validated up front.
func NewEngine(p Policy, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		policy: p,
		rng:    rand.New(rand.NewSource(1)),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Reset forgets the orientation. Call it at every new game.
func (e *Engine) Reset() {
	e.transform = Identity
	e.oriented = false
}

// Transform returns the active transform and whether one has been chosen.
func (e *Engine) Transform() (Transform, bool) {
	return e.transform, e.oriented
}

// Recommend returns the direction to play for b. With ErrNoMoves the
// direction is a random fallback for callers that still need one.
func (e *Engine) Recommend(b Board) (Direction, error) {
	d, err := e.Analyze(b)
	return d.Direction, err
}

// Analyze runs one full decision and returns how it was made.
func (e *Engine) Analyze(b Board) (Decision, error) {
	if err := b.Validate(); err != nil {
		return Decision{}, err
	}

	e.orient(b)
	t := e.transform
	board := t.Apply(b)

	dec := Decision{Transform: t, Board: board, Chosen: -1}
	dec.Candidates = Generate(board, e.policy)

	switch len(dec.Candidates) {
	case 0:
		dec.Direction = Direction(e.rng.Intn(int(DirLeft) + 1))
		dec.Reason = "no legal moves, random fallback"
		return dec, ErrNoMoves
	case 1:
		dec.Chosen = 0
		dec.Profile = e.policy.Default.Name
		dec.Reason = "only legal move"
	default:
		// Select only reports false for an empty slice.
		sel, _ := Select(board, dec.Candidates, e.policy)
		dec.Chosen = sel.Index
		dec.Profile = sel.Profile
		if sel.Cell == NoFlow {
			dec.Reason = "most open cells"
		} else {
			dec.Reason = "improves cell " + strconv.Itoa(sel.Cell)
		}
		if sel.Profile != e.policy.Default.Name {
			e.logger.Debug("alternate profile", "profile", sel.Profile, "anchor", board[AnchorCell])
		}
	}

	dec.Scores = make([]int, len(dec.Candidates))
	for i, c := range dec.Candidates {
		dec.Scores[i] = e.policy.Default.Flow.Score(c.Board)
	}

	dec.Direction = t.Direction(dec.Candidates[dec.Chosen].Vector)
	return dec, nil
}

// orient keeps or replaces the active transform for the raw board b.
func (e *Engine) orient(b Board) {
	flow := e.policy.Default.Flow
	sum := float64(b.Sum())
	current := float64(flow.Score(e.transform.Apply(b)))

	if e.oriented && current >= -sum/e.policy.StabilityRatio {
		return
	}

	best := current
	threshold := current + sum/e.policy.SwitchMarginDivisor
	chosen, found := e.transform, false
	for t := Identity; t < TransformCount; t++ {
		score := float64(flow.Score(t.Apply(b)))
		if score > best && score > threshold {
			best = score
			chosen, found = t, true
		}
	}
	if !found {
		return
	}
	if chosen != e.transform || !e.oriented {
		e.logger.Debug("orientation switch", "from", e.transform, "to", chosen, "score", best)
	}
	e.transform = chosen
	e.oriented = true
}
