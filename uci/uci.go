// Package uci is the UCI protocol front-end driving the search core, the
// external caller the core is built to serve; grounded on the teacher's
// uci/uciprotocol.go command loop but wired to search.Controller's
// explicit Start/Stop/Ponderhit lifecycle instead of context cancellation.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nazarovsa/pulsego/board"
	"github.com/nazarovsa/pulsego/eval"
	"github.com/nazarovsa/pulsego/protocol"
	"github.com/nazarovsa/pulsego/search"
)

const (
	engineName    = "PulseGo"
	engineVersion = "1.0"
	engineAuthor  = "pulsego"
)

type engine struct {
	w io.Writer

	position    board.Position
	historyKeys []uint64

	controller *search.Controller
}

// Run reads UCI commands from r and writes responses to w until "quit" or
// r is exhausted.
func Run(r io.Reader, w io.Writer) {
	e := &engine{w: w}
	initial, _ := board.NewPositionFromFEN(board.InitialPositionFEN)
	e.position = initial

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "quit" {
			if e.controller != nil {
				e.controller.Stop()
			}
			return
		}
		if err := e.handle(line); err != nil {
			fmt.Fprintln(w, "info string "+err.Error())
		}
	}
}

func (e *engine) handle(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch fields[0] {
	case "uci":
		return e.uciCommand()
	case "isready":
		fmt.Fprintln(e.w, "readyok")
		return nil
	case "ucinewgame":
		e.position, _ = board.NewPositionFromFEN(board.InitialPositionFEN)
		e.historyKeys = nil
		return nil
	case "position":
		return e.positionCommand(fields[1:])
	case "go":
		return e.goCommand(fields[1:])
	case "stop":
		if e.controller != nil {
			e.controller.Stop()
		}
		return nil
	case "ponderhit":
		if e.controller != nil {
			e.controller.Ponderhit()
		}
		return nil
	default:
		return nil
	}
}

func (e *engine) uciCommand() error {
	fmt.Fprintf(e.w, "id name %s %s\n", engineName, engineVersion)
	fmt.Fprintf(e.w, "id author %s\n", engineAuthor)
	fmt.Fprintln(e.w, "uciok")
	return nil
}

func (e *engine) positionCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("uci: position command missing arguments")
	}

	var fen string
	movesIndex := indexOf(args, "moves")
	switch args[0] {
	case "startpos":
		fen = board.InitialPositionFEN
	case "fen":
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	default:
		return errors.New("uci: unknown position command")
	}

	pos, err := board.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}

	var historyKeys []uint64
	if movesIndex >= 0 && movesIndex+1 < len(args) {
		for _, lan := range args[movesIndex+1:] {
			m, ok := board.ParseMoveLAN(&pos, lan)
			if !ok {
				return fmt.Errorf("uci: illegal move %q", lan)
			}
			historyKeys = append(historyKeys, pos.Key)
			var next board.Position
			if !pos.MakeMove(m, &next) {
				return fmt.Errorf("uci: illegal move %q", lan)
			}
			pos = next
		}
	}

	e.position = pos
	e.historyKeys = historyKeys
	return nil
}

func indexOf(args []string, value string) int {
	for i, v := range args {
		if v == value {
			return i
		}
	}
	return -1
}

func (e *engine) goCommand(args []string) error {
	limits, searchMoveStrs, isPonder := parseGoArgs(args)

	var searchMoves []board.Move
	for _, s := range searchMoveStrs {
		m, ok := board.ParseMoveLAN(&e.position, s)
		if !ok {
			return fmt.Errorf("uci: illegal searchmoves entry %q", s)
		}
		searchMoves = append(searchMoves, m)
	}

	b := board.NewBoard(e.position)
	b.SeedHistory(e.historyKeys)
	sink := protocol.NewUCI(e.w)
	evaluator := search.EvaluatorFunc(eval.Evaluate)

	var c *search.Controller
	var err error
	switch {
	case isPonder:
		c, err = search.NewPonderSearch(b, evaluator, sink, limits)
	case limits.Infinite:
		if len(searchMoves) > 0 {
			c, err = search.NewMovesSearch(b, evaluator, sink, searchMoves)
		} else {
			c, err = search.NewInfiniteSearch(b, evaluator, sink)
		}
	case limits.Depth > 0:
		c, err = search.NewDepthSearch(b, evaluator, sink, limits.Depth)
	case limits.Nodes > 0:
		c, err = search.NewNodesSearch(b, evaluator, sink, limits.Nodes)
	case limits.MoveTime > 0:
		c, err = search.NewTimeSearch(b, evaluator, sink, limits.MoveTime)
	case limits.WhiteTimeMs > 0 || limits.BlackTimeMs > 0:
		c, err = search.NewClockSearch(b, evaluator, sink, limits)
	default:
		c, err = search.NewInfiniteSearch(b, evaluator, sink)
	}
	if err != nil {
		return err
	}

	e.controller = c
	c.Start()
	return nil
}

func parseGoArgs(args []string) (limits search.Limits, searchMoves []string, ponder bool) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "ponder":
			ponder = true
		case "infinite":
			limits.Infinite = true
		case "wtime":
			limits.WhiteTimeMs = atoi64(args, &i)
		case "btime":
			limits.BlackTimeMs = atoi64(args, &i)
		case "winc":
			limits.WhiteIncrementMs = atoi64(args, &i)
		case "binc":
			limits.BlackIncrementMs = atoi64(args, &i)
		case "movestogo":
			limits.MovesToGo = int(atoi64(args, &i))
		case "depth":
			limits.Depth = int(atoi64(args, &i))
		case "nodes":
			limits.Nodes = atoi64(args, &i)
		case "movetime":
			limits.MoveTime = atoi64(args, &i)
		case "searchmoves":
			for i+1 < len(args) && !isOption(args[i+1]) {
				i++
				searchMoves = append(searchMoves, args[i])
			}
		}
	}
	return limits, searchMoves, ponder
}

func isOption(s string) bool {
	switch s {
	case "ponder", "infinite", "wtime", "btime", "winc", "binc", "movestogo",
		"depth", "nodes", "movetime", "searchmoves", "mate":
		return true
	default:
		return false
	}
}

func atoi64(args []string, i *int) int64 {
	if *i+1 >= len(args) {
		return 0
	}
	*i++
	v, _ := strconv.ParseInt(args[*i], 10, 64)
	return v
}
