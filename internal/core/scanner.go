package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/stconflicts/internal/config"
	"github.com/IvanShishkin/stconflicts/internal/conflict"
	"github.com/IvanShishkin/stconflicts/internal/filesystem"
	"github.com/IvanShishkin/stconflicts/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scanner finds Syncthing conflict groups under a directory
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	progressCallback ProgressCallback
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config: cfg,
		logger: logger,
	}
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// Scan walks path, groups conflict files and collects their metadata.
//
// Cancelling ctx is not an error: the returned result has Cancelled set
// and holds only the groups whose metadata was complete. An error is
// returned only when the scan cannot start.
func (s *Scanner) Scan(ctx context.Context, path string) (*models.ScanResult, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root is not a directory: %s", root)
	}

	workers := s.config.GetWorkers()
	algorithm := s.config.HashAlgorithm
	if algorithm == "" {
		algorithm = config.HashSHA256
	}
	hashLimit, err := s.config.HashSizeLimit()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s.logger.Info("Starting scan",
		zap.String("path", root),
		zap.Int("workers", workers),
		zap.String("hash_algorithm", algorithm),
		zap.Int64("hash_limit", hashLimit))

	result := &models.ScanResult{
		ID:        uuid.NewString(),
		RootPath:  root,
		StartTime: time.Now(),
		Stats: &models.ScanStatistics{
			WorkersUsed:   workers,
			HashAlgorithm: algorithm,
			HashSizeLimit: hashLimit,
		},
	}

	state := newScanState()

	// Walk and group on this goroutine
	assembler := conflict.NewAssembler()
	walker := filesystem.NewWalker(s.config, s.logger)
	walker.SetWarningFunc(state.warn)

	s.reportProgress("walking", 0, 0, root)
	walkStart := time.Now()
	meter := newRateMeter(10, walkStart)
	lastReport := walkStart

	walkErr := walker.Walk(ctx, root, func(path string) error {
		result.Stats.TotalFiles++
		if name, kept := assembler.AddPath(path); kept && name.Kind == conflict.KindConflict {
			result.Stats.ConflictFiles++
		}

		if now := time.Now(); now.Sub(lastReport) > progressInterval {
			rate := meter.observe(result.Stats.TotalFiles, now)
			s.reportProgress("walking", result.Stats.TotalFiles, 0,
				fmt.Sprintf("%s (%.0f files/s)", filepath.Dir(path), rate))
			lastReport = now
		}
		return nil
	})
	walkDuration := time.Since(walkStart)
	result.Stats.TotalDirs = walker.DirsVisited()

	if walkErr != nil {
		if !errors.Is(walkErr, context.Canceled) && !errors.Is(walkErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("walk failed: %w", walkErr)
		}
		result.Cancelled = true
		s.logger.Info("Scan cancelled during walk", zap.Int("files", result.Stats.TotalFiles))
	}

	if seconds := walkDuration.Seconds(); seconds > 0 {
		result.Stats.FilesPerSecond = float64(result.Stats.TotalFiles) / seconds
	}

	groups := assembler.Groups()
	for _, w := range assembler.Warnings() {
		state.warn(w)
	}

	// Collect metadata in parallel
	slots := newSlots(groups)
	if !result.Cancelled {
		c := &collector{
			logger:    s.logger,
			state:     state,
			workers:   workers,
			algorithm: algorithm,
			hashLimit: hashLimit,
			timeout:   s.config.HashTimeout,
		}
		c.run(ctx, slots, s.progressCallback)

		result.Stats.HashedFiles = int(c.hashed.Load())
		result.Stats.HashedBytes = c.hashedBytes.Load()
		result.Stats.HashSkipped = int(c.skipped.Load())
		result.Stats.HashFailed = int(c.failed.Load())
		result.Stats.UnreadableErrors = int(c.unreadable.Load())
	}

	var incomplete bool
	result.Groups, incomplete = buildGroups(groups, slots)
	if incomplete {
		result.Cancelled = true
	}
	result.Warnings = state.sortedWarnings()

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	s.reportProgress("done", len(result.Groups), len(groups), "Scan complete")
	s.logger.Info("Scan completed",
		zap.Duration("duration", result.Duration),
		zap.Int("files", result.Stats.TotalFiles),
		zap.Int("groups", len(result.Groups)),
		zap.Int("warnings", len(result.Warnings)),
		zap.Bool("cancelled", result.Cancelled))

	return result, nil
}
