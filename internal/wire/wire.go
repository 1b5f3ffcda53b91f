// Package wire defines the player-channel bit contract: the single
// direction octet a player writes per turn, and the board cell
// capture encoding every reader of the board must agree on.
package wire

// Direction is the low three bits of a player's move octet. Values 0..7
// encode the eight compass directions, rotating clockwise from up.
type Direction byte

const (
	Up Direction = iota
	UpRight
	Right
	DownRight
	Down
	DownLeft
	Left
	UpLeft
)

// MaxValidDirection is the highest direction code the wire format
// recognizes. Any octet above this is an invalid move by contract (§6).
const MaxValidDirection = Direction(UpLeft)

// deltas[d] gives (dx, dy) for direction d, indexed 0..7.
var deltas = [8][2]int{
	Up:        {0, -1},
	UpRight:   {1, -1},
	Right:     {1, 0},
	DownRight: {1, 1},
	Down:      {0, 1},
	DownLeft:  {-1, 1},
	Left:      {-1, 0},
	UpLeft:    {-1, -1},
}

// Delta returns the unit vector for a direction octet. ok is false for
// any value above MaxValidDirection, in which case dx/dy are zero.
func Delta(octet byte) (dx, dy int, ok bool) {
	if octet > byte(MaxValidDirection) {
		return 0, 0, false
	}
	d := deltas[octet]
	return d[0], d[1], true
}

// EncodeCapture returns the board cell value that records the cell as
// captured by player index idx. See SPEC_FULL.md §0 for why -idx was
// chosen over -(idx+1).
func EncodeCapture(idx int) int32 {
	return -int32(idx)
}

// DecodeCapture returns the player index that captured a cell whose
// current value is v. Callers must only call this when v <= 0.
func DecodeCapture(v int32) int {
	return int(-v)
}

// IsCaptured reports whether a cell value denotes a captured cell
// rather than an uncaptured reward.
func IsCaptured(v int32) bool {
	return v <= 0
}
