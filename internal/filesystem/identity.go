package filesystem

import "path/filepath"

// dirID identifies a directory independent of the path used to reach it
type dirID struct {
	dev  uint64
	ino  uint64
	path string
}

func resolvedID(path string) (dirID, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return dirID{}, false
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return dirID{}, false
	}
	return dirID{path: abs}, true
}
