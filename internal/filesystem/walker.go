package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/IvanShishkin/stconflicts/internal/config"
	"github.com/IvanShishkin/stconflicts/pkg/models"
	"go.uber.org/zap"
)

// WarningFunc receives non-fatal problems found during a walk
type WarningFunc func(models.Warning)

// Walker walks the filesystem and yields regular files
type Walker struct {
	config    *config.Config
	logger    *zap.Logger
	exclude   *Matcher
	onWarning WarningFunc
	dirs      int
}

// NewWalker creates a new filesystem walker
func NewWalker(cfg *config.Config, logger *zap.Logger) *Walker {
	return &Walker{
		config:  cfg,
		logger:  logger,
		exclude: NewMatcher(cfg.Exclude),
	}
}

// SetWarningFunc sets the hook that receives unreadable-path warnings
func (w *Walker) SetWarningFunc(fn WarningFunc) {
	w.onWarning = fn
}

// DirsVisited returns the number of directories read by the last Walk
func (w *Walker) DirsVisited() int {
	return w.dirs
}

// FileFunc is called with the path of every regular file found
type FileFunc func(path string) error

// Walk recursively walks the directory tree in lexical order and calls
// callback for every regular file. Each call re-reads the tree.
func (w *Walker) Walk(ctx context.Context, root string, callback FileFunc) error {
	w.dirs = 0
	visited := make(map[dirID]bool)
	return w.walkDir(ctx, root, root, visited, callback)
}

func (w *Walker) walkDir(ctx context.Context, root, dir string, visited map[dirID]bool, callback FileFunc) error {
	info, err := os.Stat(dir)
	if err != nil {
		w.warn(dir, err)
		return nil
	}
	if id, ok := identify(dir, info); ok {
		if visited[id] {
			w.logger.Debug("Skipping already visited directory", zap.String("path", dir))
			return nil
		}
		visited[id] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.warn(dir, err)
		return nil
	}
	w.dirs++

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := filepath.Join(dir, entry.Name())

		// Skip excluded files and directories
		if !w.exclude.Empty() && w.excluded(root, path, entry.Name()) {
			continue
		}

		mode := entry.Type()
		if mode&os.ModeSymlink != 0 {
			if !w.config.FollowSymlinks {
				continue
			}
			fi, err := os.Stat(path)
			if err != nil {
				w.warn(path, err)
				continue
			}
			mode = fi.Mode()
		}

		switch {
		case mode.IsDir():
			if err := w.walkDir(ctx, root, path, visited, callback); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := callback(path); err != nil {
				return err
			}
		}
	}

	return nil
}

// excluded matches the base name and the path relative to root
func (w *Walker) excluded(root, path, name string) bool {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = path
	}
	if w.exclude.Match(name, relPath) {
		w.logger.Debug("Skipping excluded path", zap.String("path", relPath))
		return true
	}
	return false
}

func (w *Walker) warn(path string, err error) {
	w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
	if w.onWarning != nil {
		w.onWarning(models.Warning{
			Path:    path,
			Reason:  models.ReasonPathUnreadable,
			Message: fmt.Sprintf("cannot read: %v", unwrapPathError(err)),
		})
	}
}

// unwrapPathError drops the operation and path prefix of *os.PathError,
// the path is already carried by the warning
func unwrapPathError(err error) error {
	if pe, ok := err.(*os.PathError); ok {
		return pe.Err
	}
	return err
}
