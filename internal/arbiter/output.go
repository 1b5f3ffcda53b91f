package arbiter

import (
	"fmt"
	"io"

	"github.com/chompchamps/arbiter/internal/boardshm"
	"github.com/chompchamps/arbiter/internal/winner"
)

// printBanner announces the match parameters once setup has spawned
// every child, mirroring the startup line spec.md §6 requires.
func printBanner(w io.Writer, cfg Config) {
	fmt.Fprintf(w, "chompchamps: board %dx%d, %d player(s), delay=%s, timeout=%s, seed=%d\n",
		cfg.Width, cfg.Height, len(cfg.PlayerPaths), cfg.Delay, cfg.Timeout, cfg.Seed)
	if cfg.ViewPath != "" {
		fmt.Fprintf(w, "chompchamps: view attached: %s\n", cfg.ViewPath)
	}
}

// printTerminationReport prints per-player results, the view's exit
// status if one was attached, and the winner block (spec.md §6).
func printTerminationReport(w io.Writer, reason TerminationReason, board *boardshm.Segment, cs *children) {
	fmt.Fprintf(w, "chompchamps: game over (%s)\n", reason)

	n := board.PlayerCount()
	records := make([]winner.Record, n)
	for i := 0; i < n; i++ {
		c := cs.players[i]
		fmt.Fprintf(w, "  player %d %-15s exit=%s score=%d valid=%d invalid=%d\n",
			i, board.Name(i), exitStatus(c), board.Score(i), board.ValidMoves(i), board.InvalidMoves(i))
		records[i] = winner.Record{
			Index:        i,
			Score:        board.Score(i),
			ValidMoves:   board.ValidMoves(i),
			InvalidMoves: board.InvalidMoves(i),
		}
	}

	if cs.view != nil {
		fmt.Fprintf(w, "  view %-15s exit=%s\n", cs.view.path, exitStatus(cs.view))
	}

	winners := winner.Resolve(records)
	switch len(winners) {
	case 0:
		fmt.Fprintf(w, "chompchamps: no winner\n")
	case 1:
		fmt.Fprintf(w, "chompchamps: winner: player %d (%s)\n", winners[0], board.Name(winners[0]))
	default:
		fmt.Fprintf(w, "chompchamps: tie between %d players:", len(winners))
		for _, idx := range winners {
			fmt.Fprintf(w, " %d", idx)
		}
		fmt.Fprintln(w)
	}
}

func exitStatus(c *child) string {
	if c == nil {
		return "n/a"
	}
	if !c.reaped {
		return "killed"
	}
	if c.exitErr == nil {
		return "0"
	}
	return c.exitErr.Error()
}
