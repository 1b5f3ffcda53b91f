// Command chompchamps-view is the contractual terminal view
// (SPEC_FULL.md §3.10): it performs the view_update/view_done
// handshake and renders the board as an ANSI grid, reading single
// keystrokes in raw mode so `q` detaches without requiring Enter.
package main

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/chompchamps/arbiter/internal/viewclient"
	"github.com/chompchamps/arbiter/internal/wire"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}
	width, err1 := strconv.Atoi(os.Args[1])
	height, err2 := strconv.Atoi(os.Args[2])
	if err1 != nil || err2 != nil {
		fmt.Fprintf(os.Stderr, "usage: %s width height\n", os.Args[0])
		os.Exit(1)
	}

	c, err := viewclient.Attach(width, height)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-view: attach failed: %v\n", err)
		os.Exit(1)
	}

	kb := newKeyWatcher()
	kb.Start()
	defer kb.Stop()

	err = c.Run(func(snap viewclient.Snapshot) error {
		if kb.quitRequested() {
			return fmt.Errorf("detached by user")
		}
		render(snap)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps-view: %v\n", err)
	}
}

// render draws the board as an ANSI-colored grid: captured cells in
// the capturing player's color, uncaptured cells as plain digits.
func render(snap viewclient.Snapshot) {
	fmt.Print("\x1b[H\x1b[2J")
	for y := 0; y < snap.Height; y++ {
		for x := 0; x < snap.Width; x++ {
			v := snap.Cells[y*snap.Width+x]
			if wire.IsCaptured(v) {
				idx := wire.DecodeCapture(v)
				fmt.Printf("\x1b[3%dm%d\x1b[0m", 1+idx%7, idx%10)
			} else {
				fmt.Printf("%d", v)
			}
		}
		fmt.Print("\n")
	}
	for i, p := range snap.Players {
		status := ""
		if p.Blocked {
			status = " (blocked)"
		}
		fmt.Printf("player %d %-15s score=%-5d valid=%-4d invalid=%-4d%s\n",
			i, p.Name, p.Score, p.ValidMoves, p.InvalidMoves, status)
	}
	if snap.GameOver {
		fmt.Println("game over")
	} else {
		fmt.Println("press q to detach")
	}
}

// keyWatcher puts stdin in raw, non-blocking mode and polls it for a
// single 'q' keystroke.
type keyWatcher struct {
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
	quit         chan struct{}
	quitClosed   sync.Once
}

func newKeyWatcher() *keyWatcher {
	return &keyWatcher{
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
		quit:   make(chan struct{}),
	}
}

func (k *keyWatcher) Start() {
	k.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		close(k.done)
		return
	}
	k.oldTermState = oldState

	if err := syscall.SetNonblock(k.fd, true); err != nil {
		_ = term.Restore(k.fd, k.oldTermState)
		k.oldTermState = nil
		close(k.done)
		return
	}
	k.nonblockSet = true

	go func() {
		defer close(k.done)
		buf := make([]byte, 1)
		for {
			select {
			case <-k.stopCh:
				return
			default:
			}
			n, err := syscall.Read(k.fd, buf)
			if n > 0 && (buf[0] == 'q' || buf[0] == 'Q') {
				k.quitClosed.Do(func() { close(k.quit) })
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
				time.Sleep(20 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
		}
	}()
}

func (k *keyWatcher) Stop() {
	k.stopped.Do(func() { close(k.stopCh) })
	<-k.done
	if k.nonblockSet {
		_ = syscall.SetNonblock(k.fd, false)
	}
	if k.oldTermState != nil {
		_ = term.Restore(k.fd, k.oldTermState)
	}
}

func (k *keyWatcher) quitRequested() bool {
	select {
	case <-k.quit:
		return true
	default:
		return false
	}
}
