// layout.go - shared board segment layout for the ChompChamps arbiter.
//
// Layout is fixed and documented here for interop (spec.md §6 requires
// any implementation targeting interop to document it): a small header
// followed by a row-major int32 cell array. No implicit padding beyond
// what's written below — every offset is chosen by hand.
package boardshm

const (
	// MaxPlayers is the fixed player-record slot count (spec.md §3:
	// "player record array of length exactly 9").
	MaxPlayers = 9

	nameFieldSize = 16 // 15 UTF-8 bytes + NUL terminator (spec.md §3)

	// Player record layout, 40 bytes:
	//   name[16] | score u32 | validMoves u32 | invalidMoves u32 |
	//   x u16 | y u16 | pid u32 | blocked u8 | pad[3]
	recordSize = 40

	recOffName         = 0
	recOffScore        = 16
	recOffValidMoves   = 20
	recOffInvalidMoves = 24
	recOffX            = 28
	recOffY            = 30
	recOffPID          = 32
	recOffBlocked      = 36

	// Header layout:
	//   width u16 | height u16 | playerCount u32 | players[9]*40 | gameOver u8 | pad[3]
	hdrOffWidth        = 0
	hdrOffHeight       = 2
	hdrOffPlayerCount  = 4
	hdrOffPlayers      = 8
	hdrOffGameOver     = hdrOffPlayers + MaxPlayers*recordSize
	cellsOffset        = hdrOffGameOver + 4 // +4 rounds the bool field to 4-byte alignment
)

// Size returns the total segment size in bytes for a board of the
// given dimensions.
func Size(width, height int) int {
	return cellsOffset + width*height*4
}

// BoardName is the fixed, process-visible shared memory segment name
// (spec.md §4.1/§6).
const BoardName = "chompchamps_board"
