//go:build windows

package filesystem

import (
	"os"
)

// identify falls back to the resolved real path (Windows)
func identify(path string, info os.FileInfo) (dirID, bool) {
	return resolvedID(path)
}
