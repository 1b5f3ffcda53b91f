package arbiter

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chompchamps/arbiter/internal/boardshm"
	"github.com/chompchamps/arbiter/internal/syncshm"
)

// Game owns the full lifecycle of one match: segment creation, child
// spawning, the scheduler, and teardown (spec.md §4.8).
type Game struct {
	cfg   Config
	board *boardshm.Segment
	sync  *syncshm.Set
	cs    *children
}

// Setup validates cfg, creates the board and sync segments, and spawns
// every player plus the optional view. Any failure here is a setup
// failure (spec.md §7): fatal, non-zero exit, with whatever was already
// created torn down before returning.
func Setup(cfg Config) (*Game, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	board, err := boardshm.Create(cfg.Width, cfg.Height, len(cfg.PlayerPaths))
	if err != nil {
		return nil, fmt.Errorf("create board segment: %w", err)
	}

	sync, err := syncshm.Create()
	if err != nil {
		board.Destroy()
		return nil, fmt.Errorf("create sync segment: %w", err)
	}

	initBoard(board, len(cfg.PlayerPaths), cfg.Seed)

	cs := &children{}
	for i, path := range cfg.PlayerPaths {
		if err := writePlayerField(sync, func() { board.SetName(i, playerDisplayName(path)) }); err != nil {
			cs.terminate()
			cs.reapAll(context.Background())
			sync.Destroy()
			board.Destroy()
			return nil, fmt.Errorf("set player %d name: %w", i, err)
		}
		c, err := spawnPlayer(i, path, cfg.Width, cfg.Height)
		if err != nil {
			cs.terminate()
			cs.reapAll(context.Background())
			sync.Destroy()
			board.Destroy()
			return nil, fmt.Errorf("spawn player %d (%s): %w", i, path, err)
		}
		pid := uint32(c.cmd.Process.Pid)
		if err := writePlayerField(sync, func() { board.SetPID(i, pid) }); err != nil {
			cs.terminate()
			cs.reapAll(context.Background())
			sync.Destroy()
			board.Destroy()
			return nil, fmt.Errorf("set player %d pid: %w", i, err)
		}
		cs.players = append(cs.players, c)
	}

	if cfg.ViewPath != "" {
		v, err := spawnView(cfg.ViewPath, cfg.Width, cfg.Height)
		if err != nil {
			cs.terminate()
			cs.reapAll(context.Background())
			sync.Destroy()
			board.Destroy()
			return nil, fmt.Errorf("spawn view (%s): %w", cfg.ViewPath, err)
		}
		cs.view = v
	}

	printBanner(os.Stdout, cfg)

	return &Game{cfg: cfg, board: board, sync: sync, cs: cs}, nil
}

// writePlayerField runs fn once under the writer section so that the
// per-player name and PID fields written during spawn go through the
// same locking discipline as every in-game board mutation (spec.md §5).
func writePlayerField(sync *syncshm.Set, fn func()) error {
	if err := sync.EnterWriter(); err != nil {
		return fmt.Errorf("enter writer section: %w", err)
	}
	defer sync.ExitWriter()
	fn()
	return nil
}

func validate(cfg Config) error {
	if cfg.Width < MinDimension || cfg.Height < MinDimension {
		return fmt.Errorf("board dimensions must be at least %dx%d", MinDimension, MinDimension)
	}
	if len(cfg.PlayerPaths) < 1 || len(cfg.PlayerPaths) > MaxPlayerCount {
		return fmt.Errorf("player count must be between 1 and %d, got %d", MaxPlayerCount, len(cfg.PlayerPaths))
	}
	return nil
}

// Run executes the scheduler to completion and tears everything down,
// printing the observable output spec.md §6 requires. It returns the
// termination reason and a process exit code (0 for clean termination).
func (g *Game) Run() (TerminationReason, int) {
	sigCh := make(chan struct{}, 1)
	osSig := make(chan os.Signal, 1)
	signal.Notify(osSig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-osSig
		select {
		case sigCh <- struct{}{}:
		default:
		}
	}()
	defer signal.Stop(osSig)

	a := newArbiter(g.cfg, g.board, g.sync, g.cs)
	reason, err := a.Run(sigCh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps: scheduler error: %v\n", err)
		g.shutdown(reason)
		return reason, 1
	}

	g.shutdown(reason)
	return reason, 0
}

// shutdown performs spec.md §4.8's graceful shutdown: set game_over,
// wake every waiter once, give children a moment to notice, force-stop
// stragglers, reap, and tear down the segments.
func (g *Game) shutdown(reason TerminationReason) {
	g.board.SetGameOver(true)

	n := g.board.PlayerCount()
	for i := 0; i < n; i++ {
		g.sync.PostPlayerMove(i)
	}
	if g.cs.view != nil {
		g.sync.PostViewUpdate()
	}

	time.Sleep(100 * time.Millisecond)

	g.cs.terminate()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	g.cs.reapAll(ctx)

	printTerminationReport(os.Stdout, reason, g.board, g.cs)

	g.sync.Destroy()
	g.board.Destroy()
}
