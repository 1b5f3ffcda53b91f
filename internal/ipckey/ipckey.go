// Package ipckey derives a SysV IPC key from a backing file's identity,
// the same role glibc's ftok() plays: every process that can stat the
// same file independently derives the same key, with no extra
// handshake.
package ipckey

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Derive computes an ftok-style key from path and a project id. It
// mirrors glibc's ftok algorithm: the low byte of the device number,
// the low 16 bits of the inode number, and the project id packed into
// a single 32-bit key.
func Derive(path string, id byte) (int32, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, fmt.Errorf("stat %s for ipc key: %w", path, err)
	}
	key := (int32(id) << 24) | (int32(st.Dev&0xff) << 16) | int32(st.Ino&0xffff)
	return key, nil
}
