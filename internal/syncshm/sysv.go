// sysv.go - minimal SysV semaphore syscalls.
//
// golang.org/x/sys/unix does not expose a portable Semctl wrapper (the
// kernel ABI takes a semctl "union" fourth argument whose shape depends
// on the command, which doesn't fit a typed Go signature), so this
// file talks to semget/semop/semctl directly via unix.Syscall at the
// raw register level instead of a higher-level abstraction.
package syncshm

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

const (
	ipcCreat = 0o1000
	ipcExcl  = 0o2000
	ipcRmid  = 0
	setAll   = 17
)

// sembuf mirrors struct sembuf from <sys/sem.h>.
type sembuf struct {
	semNum uint16
	semOp  int16
	semFlg int16
}

func semget(key int32, nsems int, semflg int) (int, error) {
	id, _, errno := unix.Syscall(unix.SYS_SEMGET, uintptr(key), uintptr(nsems), uintptr(semflg))
	if errno != 0 {
		return 0, errno
	}
	return int(id), nil
}

func semop(semid int, ops []sembuf) error {
	_, _, errno := unix.Syscall(unix.SYS_SEMOP, uintptr(semid), uintptr(unsafe.Pointer(&ops[0])), uintptr(len(ops)))
	if errno != 0 {
		return errno
	}
	return nil
}

// semtimedop waits up to timeout for ops to succeed. A nil timeout
// blocks indefinitely.
func semtimedop(semid int, ops []sembuf, timeout *unix.Timespec) error {
	var tsPtr uintptr
	if timeout != nil {
		tsPtr = uintptr(unsafe.Pointer(timeout))
	}
	_, _, errno := unix.Syscall6(unix.SYS_SEMTIMEDOP, uintptr(semid), uintptr(unsafe.Pointer(&ops[0])), uintptr(len(ops)), tsPtr, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func semSetAll(semid int, values []uint16) error {
	_, _, errno := unix.Syscall6(unix.SYS_SEMCTL, uintptr(semid), 0, setAll, uintptr(unsafe.Pointer(&values[0])), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func semRemove(semid int) error {
	_, _, errno := unix.Syscall6(unix.SYS_SEMCTL, uintptr(semid), 0, ipcRmid, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func durationToTimespec(d time.Duration) unix.Timespec {
	return unix.NsecToTimespec(d.Nanoseconds())
}
