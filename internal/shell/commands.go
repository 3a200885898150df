package shell

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/chzyer/readline"
	"github.com/samber/lo"

	"github.com/vovakirdan/flow2048/internal/solver"
)

type command struct {
	usage string
	help  string
	run   func(c *Controller, args []string) error
}

var (
	commands map[string]command
	aliases  = map[string]string{
		"show": "board",
		"s":    "board",
		"h":    "hint",
		"a":    "analyze",
		"m":    "move",
		"u":    "undo",
		"?":    "help",
		"quit": "exit",
		"bye":  "exit",
		"q":    "exit",
	}
)

// commands refers back to itself through help, so it is filled in init.
func init() {
	commands = map[string]command{
		"board": {
			usage: "board [code | 16 numbers]",
			help:  "show the board, or load one as a hex code or a list of tile values",
			run:   (*Controller).cmdBoard,
		},
		"new": {
			usage: "new",
			help:  "start from an empty board with two spawned tiles",
			run:   (*Controller).cmdNew,
		},
		"set": {
			usage: "set <cell> <value>",
			help:  "put a tile on cell 0-15 (row-major, 0 clears it)",
			run:   (*Controller).cmdSet,
		},
		"hint": {
			usage: "hint",
			help:  "print the recommended move",
			run:   (*Controller).cmdHint,
		},
		"analyze": {
			usage: "analyze",
			help:  "show every candidate the engine weighed and why it chose",
			run:   (*Controller).cmdAnalyze,
		},
		"move": {
			usage: "move [-nospawn] <up|right|down|left>",
			help:  "slide the board and spawn a tile",
			run:   (*Controller).cmdMove,
		},
		"play": {
			usage: "play [n]",
			help:  "let the engine make n moves (default 1)",
			run:   (*Controller).cmdPlay,
		},
		"undo": {
			usage: "undo",
			help:  "take back the last move",
			run:   (*Controller).cmdUndo,
		},
		"spawn": {
			usage: "spawn <on|off>",
			help:  "turn tile spawns after moves on or off",
			run:   (*Controller).cmdSpawn,
		},
		"reset": {
			usage: "reset",
			help:  "make the engine forget its orientation",
			run:   (*Controller).cmdReset,
		},
		"policy": {
			usage: "policy",
			help:  "print the active policy constants",
			run:   (*Controller).cmdPolicy,
		},
		"help": {
			usage: "help [command]",
			help:  "list commands or describe one",
			run:   (*Controller).cmdHelp,
		},
		"exit": {
			usage: "exit",
			help:  "leave the analyzer",
			run:   func(*Controller, []string) error { return ErrExit },
		},
	}
}

func completer() *readline.PrefixCompleter {
	dirs := []readline.PrefixCompleterInterface{
		readline.PcItem("up"), readline.PcItem("right"),
		readline.PcItem("down"), readline.PcItem("left"),
		readline.PcItem("-nospawn"),
	}
	names := lo.Keys(commands)
	slices.Sort(names)

	items := make([]readline.PrefixCompleterInterface, 0, len(names))
	for _, name := range names {
		switch name {
		case "move":
			items = append(items, readline.PcItem(name, dirs...))
		case "spawn":
			items = append(items, readline.PcItem(name, readline.PcItem("on"), readline.PcItem("off")))
		case "help":
			items = append(items, readline.PcItem(name, lo.Map(names, func(n string, _ int) readline.PrefixCompleterInterface {
				return readline.PcItem(n)
			})...))
		default:
			items = append(items, readline.PcItem(name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

func (c *Controller) cmdBoard(args []string) error {
	if len(args) > 0 {
		b, err := solver.ParseBoard(strings.Join(args, " "))
		if err != nil {
			return err
		}
		if err := c.SetBoard(b); err != nil {
			return err
		}
	}
	c.showBoard()
	return nil
}

func (c *Controller) cmdNew([]string) error {
	if err := c.SetBoard(solver.Board{}); err != nil {
		return err
	}
	c.spawnRandom()
	c.spawnRandom()
	c.showBoard()
	return nil
}

func (c *Controller) cmdSet(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: set <cell> <value>")
	}
	cell, err := strconv.Atoi(args[0])
	if err != nil || cell < 0 || cell >= solver.Cells {
		return fmt.Errorf("cell must be 0-%d, got %q", solver.Cells-1, args[0])
	}
	val, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad tile value %q", args[1])
	}

	next := c.board
	next[cell] = val
	if err := next.Validate(); err != nil {
		return err
	}
	c.push()
	c.board = next
	c.showBoard()
	return nil
}

func (c *Controller) cmdHint([]string) error {
	d, err := c.engine.Recommend(c.board)
	if err != nil {
		return err
	}
	c.showMessage(fmt.Sprintf("hint: %s %s", d.Arrow(), d))
	return nil
}

var chosenStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

func (c *Controller) cmdAnalyze([]string) error {
	dec, err := c.engine.Analyze(c.board)
	if err != nil {
		return err
	}

	c.showMessage(fmt.Sprintf("move %s %s  (%s, profile %s, frame %s)",
		dec.Direction.Arrow(), dec.Direction, dec.Reason, lo.Ternary(dec.Profile == "", "-", dec.Profile), dec.Transform))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "move", "trace", "open", "flow").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == dec.Chosen {
				return chosenStyle
			}
			return lipgloss.NewStyle()
		})
	for i, cand := range dec.Candidates {
		t.Row(
			strconv.Itoa(i),
			dec.Transform.Direction(cand.Vector).String(),
			cand.TraceString(),
			strconv.Itoa(cand.Open),
			strconv.Itoa(dec.Scores[i]),
		)
	}
	c.showMessage(t.String())
	return nil
}

func (c *Controller) cmdMove(args []string) error {
	spawn := c.spawn
	var dirs []string
	for _, a := range args {
		if a == "-nospawn" {
			spawn = false
			continue
		}
		dirs = append(dirs, a)
	}
	if len(dirs) != 1 {
		return errors.New("usage: move [-nospawn] <up|right|down|left>")
	}
	d, err := solver.ParseDirection(dirs[0])
	if err != nil {
		return err
	}

	saved := c.spawn
	c.spawn = spawn
	defer func() { c.spawn = saved }()

	if err := c.slide(d); err != nil {
		return err
	}
	c.showBoard()
	return nil
}

func (c *Controller) cmdPlay(args []string) error {
	n := 1
	if len(args) > 0 {
		var err error
		if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
			return fmt.Errorf("move count must be a positive number, got %q", args[0])
		}
	}

	played := 0
	for ; played < n; played++ {
		d, err := c.engine.Recommend(c.board)
		if errors.Is(err, solver.ErrNoMoves) {
			c.showMessage("game over")
			break
		}
		if err != nil {
			return err
		}
		if err := c.slide(d); err != nil {
			return fmt.Errorf("engine move %d: %w", played+1, err)
		}
	}
	c.showBoard()
	c.showMessage(fmt.Sprintf("played %d moves", played))
	return nil
}

func (c *Controller) cmdUndo([]string) error {
	if len(c.history) == 0 {
		return errors.New("nothing to undo")
	}
	last := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]
	c.board = last.board
	c.score = last.score
	c.showBoard()
	return nil
}

func (c *Controller) cmdSpawn(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: spawn <on|off>")
	}
	switch strings.ToLower(args[0]) {
	case "on":
		c.spawn = true
	case "off":
		c.spawn = false
	default:
		return fmt.Errorf("spawn takes on or off, got %q", args[0])
	}
	c.showMessage("spawn " + lo.Ternary(c.spawn, "on", "off"))
	return nil
}

func (c *Controller) cmdReset([]string) error {
	c.engine.Reset()
	c.showMessage("orientation cleared")
	return nil
}

func (c *Controller) cmdPolicy([]string) error {
	p := c.engine.Policy()
	var b strings.Builder
	fmt.Fprintf(&b, "profiles        %s, %s\n", p.Default.Name, p.Alt.Name)
	fmt.Fprintf(&b, "stability       1/%g of the sum, switch margin 1/%g\n", p.StabilityRatio, p.SwitchMarginDivisor)
	fmt.Fprintf(&b, "danger          %s, alt anchor >= %d\n", dangerString(p.Danger), p.AltAnchorMin)
	fmt.Fprintf(&b, "chase           anchor > %d, limit %d, max open %d\n", p.ChaseAnchorMin, p.ChaseLimit, p.ChaseMaxOpen)
	fmt.Fprintf(&b, "trace limits    %d (left %d)\n", p.TraceLimit, p.TraceLimitLeft)
	fmt.Fprintf(&b, "spawn value     %d\n", p.SpawnValue)
	fmt.Fprintf(&b, "negligible      %d", p.NegligibleMagnitude)
	c.showMessage(b.String())
	return nil
}

func dangerString(signals []solver.DangerSignal) string {
	parts := lo.Map(signals, func(s solver.DangerSignal, _ int) string {
		return fmt.Sprintf("cell %d < %d", s.Cell, s.Below)
	})
	return strings.Join(parts, ", ")
}

func (c *Controller) cmdHelp(args []string) error {
	if len(args) > 0 {
		name := strings.ToLower(args[0])
		if alias, ok := aliases[name]; ok {
			name = alias
		}
		cmd, ok := commands[name]
		if !ok {
			return fmt.Errorf("no help for %q", args[0])
		}
		c.showMessage(cmd.usage + "\n  " + cmd.help)
		return nil
	}

	names := lo.Keys(commands)
	slices.Sort(names)
	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "  %-38s %s\n", commands[name].usage, commands[name].help)
	}
	b.WriteString("Boards are row-major from the top left; codes use one hex digit per cell (0 empty, 1=2 ... f=32768).")
	c.showMessage(b.String())
	return nil
}
