// Package compare hands the members of a conflict group to an external
// visual diff program.
package compare

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/stconflicts/internal/config"
	"github.com/IvanShishkin/stconflicts/internal/conflict"
	"go.uber.org/zap"
)

// DefaultMaxFiles is the number of paths most three-way diff tools accept
const DefaultMaxFiles = 3

// Launcher starts the configured diff tool
type Launcher struct {
	tool     []string
	maxFiles int
	logger   *zap.Logger
}

// NewLauncher creates a launcher from the diff settings of cfg. The tool
// may carry arguments, e.g. "code --diff".
func NewLauncher(cfg *config.Config, logger *zap.Logger) (*Launcher, error) {
	tool := strings.Fields(cfg.DiffTool)
	if len(tool) == 0 {
		return nil, fmt.Errorf("no diff tool configured")
	}

	maxFiles := cfg.DiffMaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}

	return &Launcher{
		tool:     tool,
		maxFiles: maxFiles,
		logger:   logger,
	}, nil
}

// ResolveGroup finds the conflict group that path belongs to, either as
// the main file or as one of its conflict variants. Only the siblings in
// the same directory are read.
func ResolveGroup(path string) (*conflict.Group, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	name := conflict.ParseName(filepath.Base(absPath))
	if name.Kind == conflict.KindIgnored {
		return nil, fmt.Errorf("%s is a syncthing temporary file", path)
	}

	dir := filepath.Dir(absPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	asm := conflict.NewAssembler()
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		asm.AddPath(filepath.Join(dir, entry.Name()))
	}

	basePath := filepath.Join(dir, name.BaseName)
	for _, g := range asm.Groups() {
		if g.BasePath == basePath {
			return g, nil
		}
	}
	return nil, fmt.Errorf("no conflict files found for %s", path)
}

// Paths returns the paths handed to the tool: main first, then conflicts
// oldest first, capped at the configured maximum.
func (l *Launcher) Paths(g *conflict.Group) []string {
	paths := g.Paths()
	if len(paths) > l.maxFiles {
		paths = paths[:l.maxFiles]
	}
	return paths
}

// Command builds the diff command for paths without starting it
func (l *Launcher) Command(ctx context.Context, paths []string) *exec.Cmd {
	args := append(append([]string{}, l.tool[1:]...), paths...)
	return exec.CommandContext(ctx, l.tool[0], args...)
}

// Launch starts the diff tool on the group and returns once the tool has
// been started. Call Wait on the returned command to block until it exits.
func (l *Launcher) Launch(ctx context.Context, g *conflict.Group) (*exec.Cmd, error) {
	paths := l.Paths(g)
	if len(paths) < 2 {
		return nil, fmt.Errorf("need at least two files to compare, have %d", len(paths))
	}

	cmd := l.Command(ctx, paths)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	l.logger.Debug("Starting diff tool",
		zap.String("tool", cmd.Path),
		zap.Strings("paths", paths))

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", l.tool[0], err)
	}
	return cmd, nil
}
