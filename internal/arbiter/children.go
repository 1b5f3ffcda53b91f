package arbiter

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// child is a spawned player or view process. Only players have a
// readFile: the view communicates purely through semaphores (spec.md
// §4.6's "view handshake" never uses a channel).
type child struct {
	index    int // player index; -1 for the view
	path     string
	cmd      *exec.Cmd
	readFile *os.File // nil for the view
	readFd   int
	exitCh   chan error
	exitErr  error
	reaped   bool
}

// spawnPlayer starts a player binary with the contractual argv (width,
// height — spec.md §6) and wires its stdout to a pipe the arbiter polls
// in non-blocking mode (spec.md §4.3).
func spawnPlayer(index int, path string, width, height int) (*child, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create player channel pipe: %w", err)
	}

	cmd := exec.Command(path, strconv.Itoa(width), strconv.Itoa(height))
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("spawn player %s: %w", path, err)
	}
	w.Close() // the arbiter only ever reads

	if err := unix.SetNonblock(int(r.Fd()), true); err != nil {
		return nil, fmt.Errorf("set player channel non-blocking: %w", err)
	}

	c := &child{
		index:    index,
		path:     path,
		cmd:      cmd,
		readFile: r,
		readFd:   int(r.Fd()),
		exitCh:   make(chan error, 1),
	}
	go func() { c.exitCh <- cmd.Wait() }()
	return c, nil
}

// spawnView starts the optional view binary with the contractual argv.
// Its own stdout/stderr are inherited so it can draw directly to the
// terminal; it has no player channel.
func spawnView(path string, width, height int) (*child, error) {
	cmd := exec.Command(path, strconv.Itoa(width), strconv.Itoa(height))
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn view %s: %w", path, err)
	}

	c := &child{index: -1, path: path, cmd: cmd, exitCh: make(chan error, 1)}
	go func() { c.exitCh <- cmd.Wait() }()
	return c, nil
}

// children tracks every spawned process for reaping and readiness.
type children struct {
	players []*child
	view    *child // nil if no view was attached
}

// alivePlayers returns players that have not yet been reaped. A player
// whose channel hit EOF stays in the list until reapAll records its exit.
func (cs *children) alivePlayers() []*child {
	var out []*child
	for _, p := range cs.players {
		if !p.reaped {
			out = append(out, p)
		}
	}
	return out
}

// terminate sends SIGTERM to every child still running. This is the
// safety net behind the "wake every waiter once" semaphore broadcast in
// spec.md §4.8 step (b): a child that never observes game_over because
// it's blocked on I/O unrelated to the sync segment still gets reaped.
func (cs *children) terminate() {
	for _, p := range cs.players {
		if !p.reaped {
			p.cmd.Process.Signal(syscall.SIGTERM)
		}
	}
	if cs.view != nil && !cs.view.reaped {
		cs.view.cmd.Process.Signal(syscall.SIGTERM)
	}
}

// reapAll waits for every child to exit, concurrently, up to ctx's
// deadline. Children that exit are marked reaped with their exit error
// recorded for the termination report (spec.md §6's observable output).
func (cs *children) reapAll(ctx context.Context) {
	var g errgroup.Group
	all := append([]*child{}, cs.players...)
	if cs.view != nil {
		all = append(all, cs.view)
	}
	for _, c := range all {
		c := c
		if c.reaped {
			continue
		}
		g.Go(func() error {
			select {
			case err := <-c.exitCh:
				c.exitErr = err
				c.reaped = true
			case <-ctx.Done():
			}
			return nil
		})
	}
	g.Wait()
}

// closeChannel closes a player's read-end pipe after its channel has
// failed (EOF or a non-transient error), per spec.md §4.3.
func (c *child) closeChannel() {
	if c.readFile != nil {
		c.readFile.Close()
		c.readFile = nil
	}
}
