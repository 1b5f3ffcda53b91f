package boardshm

import (
	"encoding/binary"

	"github.com/chompchamps/arbiter/internal/shmfile"
)

var le = binary.LittleEndian

// Segment is an attached view of the shared board segment. All methods
// assume the caller already holds the appropriate reader or writer
// lock from internal/syncshm; Segment itself performs no locking.
type Segment struct {
	data   []byte
	width  int
	height int
}

// Create allocates and zero-initializes a new board segment sized for
// width x height cells, and sets the header fields. Only the arbiter
// calls Create.
func Create(width, height, playerCount int) (*Segment, error) {
	data, err := shmfile.Create(BoardName, Size(width, height))
	if err != nil {
		return nil, err
	}
	s := &Segment{data: data, width: width, height: height}
	le.PutUint16(s.data[hdrOffWidth:], uint16(width))
	le.PutUint16(s.data[hdrOffHeight:], uint16(height))
	le.PutUint32(s.data[hdrOffPlayerCount:], uint32(playerCount))
	return s, nil
}

// Attach maps an existing board segment. Players and the view attach
// read-only; only the arbiter attaches writable. width/height must
// match what Create used, which players and the view recompute from
// their own argv (spec.md §6).
func Attach(width, height int, writable bool) (*Segment, error) {
	data, err := shmfile.Attach(BoardName, Size(width, height), writable)
	if err != nil {
		return nil, err
	}
	return &Segment{data: data, width: width, height: height}, nil
}

// Destroy unmaps and unlinks the segment. Only the arbiter calls this,
// after every child has been reaped (spec.md §3).
func (s *Segment) Destroy() {
	shmfile.Destroy(BoardName, s.data)
}

func (s *Segment) Width() int  { return s.width }
func (s *Segment) Height() int { return s.height }

// PlayerCount returns the player_count header field.
func (s *Segment) PlayerCount() int {
	return int(le.Uint32(s.data[hdrOffPlayerCount:]))
}

// GameOver returns the game_over flag.
func (s *Segment) GameOver() bool {
	return s.data[hdrOffGameOver] != 0
}

// SetGameOver sets the game_over flag. Monotone: callers must never
// set it back to false (spec.md invariant 5).
func (s *Segment) SetGameOver(v bool) {
	if v {
		s.data[hdrOffGameOver] = 1
	} else {
		s.data[hdrOffGameOver] = 0
	}
}

func (s *Segment) cellIndex(x, y int) int {
	return cellsOffset + (y*s.width+x)*4
}

func (s *Segment) Cell(x, y int) int32 {
	return int32(le.Uint32(s.data[s.cellIndex(x, y):]))
}

func (s *Segment) SetCell(x, y int, v int32) {
	le.PutUint32(s.data[s.cellIndex(x, y):], uint32(v))
}

func (s *Segment) recordOffset(i int) int {
	return hdrOffPlayers + i*recordSize
}

func (s *Segment) PlayerPos(i int) (x, y int) {
	off := s.recordOffset(i)
	return int(le.Uint16(s.data[off+recOffX:])), int(le.Uint16(s.data[off+recOffY:]))
}

func (s *Segment) SetPlayerPos(i, x, y int) {
	off := s.recordOffset(i)
	le.PutUint16(s.data[off+recOffX:], uint16(x))
	le.PutUint16(s.data[off+recOffY:], uint16(y))
}

func (s *Segment) Score(i int) uint32 {
	return le.Uint32(s.data[s.recordOffset(i)+recOffScore:])
}

func (s *Segment) AddScore(i int, delta int32) {
	off := s.recordOffset(i) + recOffScore
	le.PutUint32(s.data[off:], le.Uint32(s.data[off:])+uint32(delta))
}

func (s *Segment) ValidMoves(i int) uint32 {
	return le.Uint32(s.data[s.recordOffset(i)+recOffValidMoves:])
}

func (s *Segment) IncValidMoves(i int) {
	off := s.recordOffset(i) + recOffValidMoves
	le.PutUint32(s.data[off:], le.Uint32(s.data[off:])+1)
}

func (s *Segment) InvalidMoves(i int) uint32 {
	return le.Uint32(s.data[s.recordOffset(i)+recOffInvalidMoves:])
}

func (s *Segment) IncInvalidMoves(i int) {
	off := s.recordOffset(i) + recOffInvalidMoves
	le.PutUint32(s.data[off:], le.Uint32(s.data[off:])+1)
}

func (s *Segment) PID(i int) uint32 {
	return le.Uint32(s.data[s.recordOffset(i)+recOffPID:])
}

func (s *Segment) SetPID(i int, pid uint32) {
	le.PutUint32(s.data[s.recordOffset(i)+recOffPID:], pid)
}

func (s *Segment) Blocked(i int) bool {
	return s.data[s.recordOffset(i)+recOffBlocked] != 0
}

func (s *Segment) SetBlocked(i int, blocked bool) {
	off := s.recordOffset(i) + recOffBlocked
	if blocked {
		s.data[off] = 1
	} else {
		s.data[off] = 0
	}
}

func (s *Segment) Name(i int) string {
	off := s.recordOffset(i) + recOffName
	raw := s.data[off : off+nameFieldSize]
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n])
}

func (s *Segment) SetName(i int, name string) {
	off := s.recordOffset(i) + recOffName
	raw := s.data[off : off+nameFieldSize]
	for j := range raw {
		raw[j] = 0
	}
	n := copy(raw[:nameFieldSize-1], name)
	_ = n
}
