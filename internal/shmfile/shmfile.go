// Package shmfile provides the create/attach/destroy primitives shared
// by the board and sync segments: a /dev/shm-backed file, sized with
// ftruncate and mapped with mmap, following the same
// shm_open+ftruncate+mmap+shm_unlink sequence POSIX shared memory uses,
// built on golang.org/x/sys/unix instead of libc.
package shmfile

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Dir is where named segments live, mirroring POSIX shm_open's backing
// store on Linux.
const Dir = "/dev/shm"

// Path returns the backing file path for a fixed segment name such as
// "chompchamps_board".
func Path(name string) string {
	return filepath.Join(Dir, name)
}

// Create allocates and zeroes a new segment of the given size, truncating
// any stale segment left behind by a previous run.
func Create(name string, size int) ([]byte, error) {
	path := Path(name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0666)
	if err != nil {
		return nil, fmt.Errorf("create shared memory %s: %w", name, err)
	}
	defer f.Close()

	if err := unix.Ftruncate(int(f.Fd()), int64(size)); err != nil {
		return nil, fmt.Errorf("ftruncate %s to %d bytes: %w", name, size, err)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", name, err)
	}
	return data, nil
}

// Attach maps an existing segment created by Create. writable controls
// whether the mapping allows writes (players and the view attach
// read-only; only the arbiter attaches writable).
func Attach(name string, size int, writable bool) ([]byte, error) {
	path := Path(name)
	flag := os.O_RDONLY
	prot := unix.PROT_READ
	if writable {
		flag = os.O_RDWR
		prot |= unix.PROT_WRITE
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("open shared memory %s: %w", name, err)
	}
	defer f.Close()

	data, err := unix.Mmap(int(f.Fd()), 0, size, prot, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", name, err)
	}
	return data, nil
}

// Destroy unmaps data and unlinks the backing file. Permission errors
// on unlink are tolerated, the same as EACCES/EPERM during shm_unlink.
func Destroy(name string, data []byte) {
	if data != nil {
		unix.Munmap(data)
	}
	if err := os.Remove(Path(name)); err != nil && !os.IsPermission(err) {
		fmt.Fprintf(os.Stderr, "chompchamps: unlink %s: %v\n", name, err)
	}
}
