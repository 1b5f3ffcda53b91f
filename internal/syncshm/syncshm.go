// Package syncshm implements the sync segment and the writer-preference
// reader/writer protocol from spec.md §4.2/§5: one SysV semaphore set
// (view_update, view_done, master_access, state_mutex,
// reader_count_mutex, player_move[0..8]) plus a readers_count integer
// living in a tiny second shared memory mapping.
package syncshm

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/chompchamps/arbiter/internal/ipckey"
	"github.com/chompchamps/arbiter/internal/shmfile"
	"golang.org/x/sys/unix"
)

// Semaphore indices within the set.
const (
	semViewUpdate = iota
	semViewDone
	semMasterAccess
	semStateMutex
	semReaderCountMutex
	semPlayerMoveBase
)

// MaxPlayers mirrors boardshm.MaxPlayers; duplicated as a plain constant
// to avoid a dependency cycle (boardshm does not need syncshm, but both
// are leaves used by internal/arbiter).
const MaxPlayers = 9

const numSems = semPlayerMoveBase + MaxPlayers

// SyncName is the fixed, process-visible sync segment name (spec.md §4.2/§6).
const SyncName = "chompchamps_sync"

const ipcProjectID = 0x43 // 'C' for ChompChamps; arbitrary, fixed.

const readersCountFieldSize = 4

var le = binary.LittleEndian

// Set is an attached handle on the sync segment: the semaphore set and
// the readers_count shared integer.
type Set struct {
	semid int
	data  []byte // readers_count only
}

// boardPathForKey returns the backing file path whose identity seeds
// the semaphore key, so every process derives the same key
// independently (internal/ipckey).
func boardPathForKey() string {
	return shmfile.Path("chompchamps_board")
}

// Create allocates a new sync segment: the small readers_count mapping
// and a freshly created semaphore set, all semaphores initialized per
// spec.md §5 (mutexes start available, signals start unsignaled).
// The board segment must already exist, since the semaphore key is
// derived from it.
func Create() (*Set, error) {
	data, err := shmfile.Create(SyncName, readersCountFieldSize)
	if err != nil {
		return nil, err
	}

	key, err := ipckey.Derive(boardPathForKey(), ipcProjectID)
	if err != nil {
		return nil, err
	}

	semid, err := semget(key, numSems, ipcCreat|ipcExcl|0666)
	if err != nil {
		// A stale set from a crashed previous run: remove and retry once.
		if staleID, statErr := semget(key, numSems, 0666); statErr == nil {
			semRemove(staleID)
		}
		semid, err = semget(key, numSems, ipcCreat|ipcExcl|0666)
		if err != nil {
			return nil, err
		}
	}

	values := make([]uint16, numSems)
	values[semMasterAccess] = 1
	values[semStateMutex] = 1
	values[semReaderCountMutex] = 1
	// Each player_move[i] starts at 1, granting the first move before any
	// player is spawned; the arbiter posts it again only after consuming
	// a move (spec.md §5). view_update/view_done start at 0.
	for i := 0; i < MaxPlayers; i++ {
		values[semPlayerMoveBase+i] = 1
	}
	if err := semSetAll(semid, values); err != nil {
		return nil, err
	}

	le.PutUint32(data, 0)
	return &Set{semid: semid, data: data}, nil
}

// Attach maps an existing sync segment and locates its semaphore set
// by key. Unlike the board segment, the sync segment is always mapped
// read-write: every process (master, players, view) mutates
// readers_count under reader_count_mutex.
func Attach() (*Set, error) {
	data, err := shmfile.Attach(SyncName, readersCountFieldSize, true)
	if err != nil {
		return nil, err
	}
	key, err := ipckey.Derive(boardPathForKey(), ipcProjectID)
	if err != nil {
		return nil, err
	}
	semid, err := semget(key, numSems, 0666)
	if err != nil {
		return nil, err
	}
	return &Set{semid: semid, data: data}, nil
}

// Destroy removes the semaphore set and unmaps/unlinks the readers_count
// segment. Only the arbiter calls this, after every child is reaped.
func (s *Set) Destroy() {
	semRemove(s.semid)
	shmfile.Destroy(SyncName, s.data)
}

func (s *Set) p(idx int) error { return semop(s.semid, []sembuf{{semNum: uint16(idx), semOp: -1}}) }
func (s *Set) v(idx int) error { return semop(s.semid, []sembuf{{semNum: uint16(idx), semOp: 1}}) }

// PostViewUpdate posts view_update, authorizing the view to render.
func (s *Set) PostViewUpdate() error { return s.v(semViewUpdate) }

// WaitViewUpdate blocks until view_update is posted (view side).
func (s *Set) WaitViewUpdate() error { return s.p(semViewUpdate) }

// PostViewDone posts view_done, completing the ping-pong (view side).
func (s *Set) PostViewDone() error { return s.v(semViewDone) }

// WaitViewDone blocks until the view posts view_done (arbiter side).
func (s *Set) WaitViewDone() error { return s.p(semViewDone) }

// PostPlayerMove authorizes player i's next move submission. The
// arbiter posts this exactly once per move it processes for player i,
// including invalid moves (spec.md §5).
func (s *Set) PostPlayerMove(i int) error { return s.v(semPlayerMoveBase + i) }

// WaitPlayerMove blocks until the arbiter authorizes this player's
// next move (player side).
func (s *Set) WaitPlayerMove(i int) error { return s.p(semPlayerMoveBase + i) }

// EnterWriter performs the writer-acquire sequence from spec.md §5:
// P(master_access), P(state_mutex), V(master_access).
func (s *Set) EnterWriter() error {
	if err := s.p(semMasterAccess); err != nil {
		return err
	}
	if err := s.p(semStateMutex); err != nil {
		return err
	}
	return s.v(semMasterAccess)
}

// ExitWriter performs the writer-release: V(state_mutex).
func (s *Set) ExitWriter() error {
	return s.v(semStateMutex)
}

// EnterReader performs the reader-entry handshake from spec.md §5: the
// master_access turnstile, then the first-reader-locks-state_mutex
// dance guarded by reader_count_mutex.
func (s *Set) EnterReader() error {
	if err := s.p(semMasterAccess); err != nil {
		return err
	}
	if err := s.v(semMasterAccess); err != nil {
		return err
	}

	if err := s.p(semReaderCountMutex); err != nil {
		return err
	}
	count := s.incReadersCount()
	if count == 1 {
		if err := s.p(semStateMutex); err != nil {
			s.v(semReaderCountMutex)
			return err
		}
	}
	return s.v(semReaderCountMutex)
}

// ExitReader performs the reader-exit handshake from spec.md §5.
func (s *Set) ExitReader() error {
	if err := s.p(semReaderCountMutex); err != nil {
		return err
	}
	count := s.decReadersCount()
	if count == 0 {
		if err := s.v(semStateMutex); err != nil {
			s.v(semReaderCountMutex)
			return err
		}
	}
	return s.v(semReaderCountMutex)
}

func (s *Set) incReadersCount() uint32 {
	v := le.Uint32(s.data) + 1
	le.PutUint32(s.data, v)
	return v
}

func (s *Set) decReadersCount() uint32 {
	v := le.Uint32(s.data) - 1
	le.PutUint32(s.data, v)
	return v
}

// ErrTimeout is returned by timed waits that expire without success.
var ErrTimeout = errors.New("syncshm: wait timed out")

// WaitPlayerMoveTimeout is used by reference player implementations that
// want to give up waiting rather than block forever (not part of the
// arbiter's own contract, which always posts exactly once per move).
func (s *Set) WaitPlayerMoveTimeout(i int, timeout time.Duration) error {
	ts := durationToTimespec(timeout)
	err := semtimedop(s.semid, []sembuf{{semNum: uint16(semPlayerMoveBase + i), semOp: -1}}, &ts)
	if errors.Is(err, unix.EAGAIN) {
		return ErrTimeout
	}
	return err
}
