// Command chompchamps-master is the arbiter: it creates the shared
// board and sync segments, spawns the player and (optional) view
// processes, runs the scheduler to completion, and tears everything
// down (spec.md §4, §6).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chompchamps/arbiter/internal/arbiter"
)

// Flag names and units match spec.md §6 exactly: -w/-h floor and
// default to 10, -d is milliseconds, -t is seconds, -s is the board
// seed, -v is an optional view path, -p marks "players follow" with
// the binaries themselves taken from the remaining positional args
// rather than from a repeated flag.
func main() {
	width := flag.Int("w", arbiter.MinDimension, "board width (floor 10)")
	height := flag.Int("h", arbiter.MinDimension, "board height (floor 10)")
	delayMs := flag.Int("d", 200, "inter-valid-move delay in milliseconds")
	timeoutSec := flag.Int("t", 10, "no-progress timeout in seconds")
	seed := flag.Int64("s", time.Now().Unix(), "seed for the pseudo-random board")
	view := flag.String("v", "", "optional view binary path")
	pFlag := flag.Bool("p", false, "marks the start of one to nine player binaries")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-w width] [-h height] [-d delay] [-t timeout] [-s seed] [-v view] -p player1 [player2 ...]\n", os.Args[0])
	}
	flag.Parse()

	if !*pFlag {
		fmt.Fprintln(os.Stderr, "Error: at least one player must be specified with -p")
		flag.Usage()
		os.Exit(1)
	}

	players := flag.Args()
	if len(players) == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one player must be specified with -p")
		flag.Usage()
		os.Exit(1)
	}
	if len(players) > arbiter.MaxPlayerCount {
		fmt.Fprintf(os.Stderr, "Error: maximum number of players is %d\n", arbiter.MaxPlayerCount)
		os.Exit(1)
	}

	if *width < arbiter.MinDimension {
		*width = arbiter.MinDimension
	}
	if *height < arbiter.MinDimension {
		*height = arbiter.MinDimension
	}

	cfg := arbiter.Config{
		Width:       *width,
		Height:      *height,
		Delay:       time.Duration(*delayMs) * time.Millisecond,
		Timeout:     time.Duration(*timeoutSec) * time.Second,
		Seed:        *seed,
		ViewPath:    *view,
		PlayerPaths: players,
	}

	game, err := arbiter.Setup(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chompchamps: setup failed: %v\n", err)
		os.Exit(1)
	}

	_, code := game.Run()
	os.Exit(code)
}
