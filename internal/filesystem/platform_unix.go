//go:build !windows

package filesystem

import (
	"os"
	"syscall"
)

// identify returns the device and inode of a directory (Unix)
func identify(path string, info os.FileInfo) (dirID, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return resolvedID(path)
	}
	return dirID{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true
}
