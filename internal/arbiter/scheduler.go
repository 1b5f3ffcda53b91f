package arbiter

import (
	"fmt"
	"math"
	"time"

	"github.com/chompchamps/arbiter/internal/boardshm"
	"github.com/chompchamps/arbiter/internal/engine"
	"github.com/chompchamps/arbiter/internal/syncshm"
	"golang.org/x/sys/unix"
)

// pollQuantum bounds each readiness wait so the loop can notice signals
// and re-check the no-progress timeout promptly; it is not itself the
// no-progress timeout (spec.md §9: that's measured from the last valid
// move, not the select quantum).
const pollQuantum = 100 * time.Millisecond

// Arbiter runs the scheduler/main loop (spec.md §4.6) over an already
// initialized board and sync segment.
type Arbiter struct {
	cfg   Config
	board *boardshm.Segment
	sync  *syncshm.Set
	cs    *children

	startIndex     int
	lastValidMove  time.Time
	channelFailure map[int]bool // player index -> became blocked via EOF/read error
}

func newArbiter(cfg Config, board *boardshm.Segment, sync *syncshm.Set, cs *children) *Arbiter {
	return &Arbiter{
		cfg:            cfg,
		board:          board,
		sync:           sync,
		cs:             cs,
		lastValidMove:  time.Now(),
		channelFailure: make(map[int]bool),
	}
}

// Run drives the main loop until termination, returning the reason.
func (a *Arbiter) Run(sigCh <-chan struct{}) (TerminationReason, error) {
	n := a.board.PlayerCount()

	if err := a.refreshBlockedFlags(); err != nil {
		return "", err
	}

	for {
		select {
		case <-sigCh:
			return ReasonSignal, nil
		default:
		}

		if time.Since(a.lastValidMove) >= a.cfg.Timeout {
			return ReasonNoProgressTimeout, nil
		}

		if a.allBlocked(n) {
			if a.allBlockedByChannelFailure(n) {
				return ReasonAllChannelsEOF, nil
			}
			return ReasonAllBlocked, nil
		}

		fds, fdToPlayer := a.buildPollSet(n)
		if len(fds) == 0 {
			// Every remaining player is blocked by the state predicate
			// but the loop above didn't already catch it (race between
			// a just-closed channel and the blocked recompute) — settle
			// on the next iteration rather than poll on an empty set.
			continue
		}

		ready, err := pollReady(fds, pollQuantum)
		if err != nil {
			return "", fmt.Errorf("poll player channels: %w", err)
		}

		if len(ready) == 0 {
			continue
		}

		readyByIndex := make([]bool, n)
		for _, fd := range ready {
			readyByIndex[fdToPlayer[fd]] = true
		}

		idx, ok := selectRoundRobin(n, a.startIndex, readyByIndex)
		if !ok {
			continue
		}

		if err := a.processOnePlayer(idx); err != nil {
			return "", err
		}
		a.startIndex = nextStartIndex(a.startIndex, n)
	}
}

// processOnePlayer reads one octet from player idx's channel, applies
// it, re-evaluates blocked flags, and drives the view ping-pong and
// inter-move delay for a valid move (spec.md §4.6 step 5).
func (a *Arbiter) processOnePlayer(idx int) error {
	c := a.cs.players[idx]
	var buf [1]byte
	n, err := unix.Read(c.readFd, buf[:])

	switch {
	case err == nil && n == 0:
		return a.markChannelFailed(idx, c)
	case err != nil && err != unix.EAGAIN:
		return a.markChannelFailed(idx, c)
	case err == unix.EAGAIN:
		// Spurious wakeup: nothing to process this round.
		return nil
	}

	octet := buf[0]
	validBefore := a.board.ValidMoves(idx)

	if err := a.sync.EnterWriter(); err != nil {
		return fmt.Errorf("enter writer section: %w", err)
	}
	engine.ApplyMove(a.board, idx, octet)
	a.recomputeBlockedLocked()
	if err := a.sync.ExitWriter(); err != nil {
		return fmt.Errorf("exit writer section: %w", err)
	}

	if err := a.sync.PostPlayerMove(idx); err != nil {
		return fmt.Errorf("post player_move[%d]: %w", idx, err)
	}

	if a.board.ValidMoves(idx) > validBefore {
		a.lastValidMove = time.Now()
		if a.cs.view != nil {
			if err := a.sync.PostViewUpdate(); err != nil {
				return fmt.Errorf("post view_update: %w", err)
			}
			if err := a.sync.WaitViewDone(); err != nil {
				return fmt.Errorf("wait view_done: %w", err)
			}
		}
		time.Sleep(a.cfg.Delay)
	}
	return nil
}

func (a *Arbiter) markChannelFailed(idx int, c *child) error {
	a.channelFailure[idx] = true
	c.closeChannel()
	return writePlayerField(a.sync, func() { a.board.SetBlocked(idx, true) })
}

// recomputeBlockedLocked re-evaluates the blocked predicate for every
// non-blocked player. Must run inside the writer critical section
// (spec.md §4.5: "within the same writer critical section as the move
// that caused it").
func (a *Arbiter) recomputeBlockedLocked() {
	n := a.board.PlayerCount()
	for i := 0; i < n; i++ {
		if a.board.Blocked(i) {
			continue
		}
		if engine.IsBlocked(a.board, i) {
			a.board.SetBlocked(i, true)
		}
	}
}

// refreshBlockedFlags takes the writer section on its own to evaluate
// blocked state before the loop's first iteration (no move has happened
// yet to ride along with).
func (a *Arbiter) refreshBlockedFlags() error {
	if err := a.sync.EnterWriter(); err != nil {
		return err
	}
	a.recomputeBlockedLocked()
	return a.sync.ExitWriter()
}

func (a *Arbiter) allBlocked(n int) bool {
	for i := 0; i < n; i++ {
		if !a.board.Blocked(i) {
			return false
		}
	}
	return true
}

func (a *Arbiter) allBlockedByChannelFailure(n int) bool {
	for i := 0; i < n; i++ {
		if !a.channelFailure[i] {
			return false
		}
	}
	return true
}

// buildPollSet returns the poll descriptors for every non-blocked,
// still-open player channel (spec.md §4.6 step 3), plus a map back
// from fd to player index.
func (a *Arbiter) buildPollSet(n int) ([]unix.PollFd, map[int32]int) {
	var fds []unix.PollFd
	byFd := make(map[int32]int)
	for i := 0; i < n; i++ {
		if a.board.Blocked(i) {
			continue
		}
		c := a.cs.players[i]
		if c.readFile == nil {
			continue
		}
		fds = append(fds, unix.PollFd{Fd: int32(c.readFd), Events: unix.POLLIN})
		byFd[int32(c.readFd)] = i
	}
	return fds, byFd
}

// pollReady waits up to timeout for any fd to become readable and
// returns the readable fds.
func pollReady(fds []unix.PollFd, timeout time.Duration) ([]int32, error) {
	ms := int(timeout / time.Millisecond)
	if ms <= 0 {
		ms = 1
	}
	if ms > math.MaxInt32 {
		ms = math.MaxInt32
	}

	cpy := make([]unix.PollFd, len(fds))
	copy(cpy, fds)

	n, err := unix.Poll(cpy, ms)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	var ready []int32
	for _, pfd := range cpy {
		if pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
			ready = append(ready, pfd.Fd)
		}
	}
	return ready, nil
}
