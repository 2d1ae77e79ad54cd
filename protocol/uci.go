package protocol

import (
	"fmt"
	"io"
	"strings"

	"github.com/nazarovsa/pulsego/board"
)

// UCI writes Info and BestMove records to w in UCI wire format, grounded
// on the teacher's uci/uciprotocol.go printSearchInfo.
type UCI struct {
	w io.Writer
}

// NewUCI builds a Sink that writes UCI protocol lines to w.
func NewUCI(w io.Writer) *UCI {
	return &UCI{w: w}
}

func (u *UCI) Send(info Info) {
	var sb strings.Builder
	sb.WriteString("info")
	if info.Depth != 0 {
		fmt.Fprintf(&sb, " depth %d", info.Depth)
	}
	if info.CurrentMove != board.NoMove {
		fmt.Fprintf(&sb, " currmove %s currmovenumber %d", info.CurrentMove, info.CurrentMoveNumber)
	} else {
		if info.HasMate {
			fmt.Fprintf(&sb, " score mate %d", info.Mate)
		} else {
			fmt.Fprintf(&sb, " score cp %d", info.Centipawns)
		}
		fmt.Fprintf(&sb, " nodes %d time %d nps %d", info.Nodes, info.TimeMs, info.Nps)
		if len(info.PV) > 0 {
			sb.WriteString(" pv")
			for _, m := range info.PV {
				sb.WriteString(" " + m.String())
			}
		}
	}
	fmt.Fprintln(u.w, sb.String())
}

func (u *UCI) SendBestMove(bm BestMove) {
	if bm.Ponder != board.NoMove {
		fmt.Fprintf(u.w, "bestmove %s ponder %s\n", bm.Move, bm.Ponder)
		return
	}
	fmt.Fprintf(u.w, "bestmove %s\n", bm.Move)
}
