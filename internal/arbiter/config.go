// Package arbiter implements the master: scheduler/main loop, winner
// resolution, and signal-driven lifecycle from spec.md §4.6-§4.8.
package arbiter

import "time"

// MinDimension is the floor spec.md §6 places on both board dimensions.
const MinDimension = 10

// MaxPlayerCount is the largest player_count spec.md §3 allows.
const MaxPlayerCount = 9

// Config holds the resolved command-line parameters (spec.md §6).
type Config struct {
	Width       int
	Height      int
	Delay       time.Duration
	Timeout     time.Duration
	Seed        int64
	ViewPath    string
	PlayerPaths []string
}

// TerminationReason records why a game ended, for the observable
// output spec.md §4.6/§6 requires.
type TerminationReason string

const (
	ReasonAllBlocked        TerminationReason = "all-blocked"
	ReasonNoProgressTimeout TerminationReason = "timeout"
	ReasonSignal            TerminationReason = "signal"
	ReasonAllChannelsEOF    TerminationReason = "eof"
)
