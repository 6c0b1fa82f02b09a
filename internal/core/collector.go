package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/IvanShishkin/stconflicts/internal/conflict"
	"github.com/IvanShishkin/stconflicts/internal/filesystem"
	"github.com/IvanShishkin/stconflicts/pkg/models"
	"go.uber.org/zap"
)

// slot is the write-once home of one entry's metadata. Exactly one worker
// writes a slot; the control goroutine reads it after all workers exit.
type slot struct {
	member  *conflict.Member
	entry   models.FileEntry
	done    bool // metadata collection finished
	dropped bool // the file could not be stat'ed
}

// collector fills size, mtime and hash for every slot using a fixed pool
// of workers draining a shared channel of slots
type collector struct {
	logger    *zap.Logger
	state     *scanState
	workers   int
	algorithm string
	hashLimit int64 // negative disables hashing
	timeout   time.Duration

	processed   atomic.Int64
	hashed      atomic.Int64
	hashedBytes atomic.Int64
	skipped     atomic.Int64
	failed      atomic.Int64
	unreadable  atomic.Int64
}

// newSlots lays out one slot per member, group by group, in report order
func newSlots(groups []*conflict.Group) [][]*slot {
	out := make([][]*slot, len(groups))
	for i, g := range groups {
		slots := make([]*slot, 0, len(g.Conflicts)+1)
		if g.Main != nil {
			slots = append(slots, &slot{member: g.Main})
		}
		for _, c := range g.Conflicts {
			slots = append(slots, &slot{member: c})
		}
		out[i] = slots
	}
	return out
}

// run processes every slot and returns when all workers have exited.
// On cancellation the remaining slots are left unfinished.
func (c *collector) run(ctx context.Context, groups [][]*slot, progress ProgressCallback) {
	var queue []*slot
	for _, slots := range groups {
		queue = append(queue, slots...)
	}
	total := len(queue)
	if progress != nil {
		progress("hashing", 0, total, "Collecting metadata...")
	}

	jobs := make(chan *slot, c.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go c.worker(ctx, &wg, jobs)
	}

	lastReport := time.Now()
feed:
	for _, s := range queue {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- s:
		}
		if progress != nil && time.Since(lastReport) > progressInterval {
			progress("hashing", int(c.processed.Load()), total, s.member.Path)
			lastReport = time.Now()
		}
	}

	close(jobs)
	wg.Wait()

	if progress != nil {
		progress("hashing", int(c.processed.Load()), total, "Metadata complete")
	}
}

// worker processes slots from the channel
func (c *collector) worker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan *slot) {
	defer wg.Done()

	for s := range jobs {
		if ctx.Err() != nil {
			continue
		}
		c.collect(ctx, s)
		c.processed.Add(1)
	}
}

// collect stats and, when allowed, hashes a single file
func (c *collector) collect(ctx context.Context, s *slot) {
	m := s.member
	s.entry = models.FileEntry{Path: m.Path, Role: m.Role}
	if m.Role == models.RoleConflict {
		s.entry.Conflict = &models.ConflictInfo{Timestamp: m.Timestamp, DeviceID: m.DeviceID}
	}

	info, err := os.Stat(m.Path)
	if err != nil {
		c.unreadable.Add(1)
		c.state.warn(models.Warning{
			Path:    m.Path,
			Reason:  models.ReasonPathUnreadable,
			Message: fmt.Sprintf("cannot stat: %v", err),
		})
		c.logger.Warn("Cannot stat file", zap.String("path", m.Path), zap.Error(err))
		s.dropped = true
		s.done = true
		return
	}
	s.entry.Size = info.Size()
	s.entry.ModTime = info.ModTime()

	if c.hashLimit < 0 || info.Size() > c.hashLimit {
		c.logger.Debug("File too large, not hashing",
			zap.String("path", m.Path),
			zap.Int64("size", info.Size()))
		c.skipped.Add(1)
		s.done = true
		return
	}

	hashCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		hashCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	sum, err := filesystem.HashFile(hashCtx, m.Path, c.algorithm)
	if err != nil {
		if ctx.Err() != nil {
			// scan cancelled, the slot stays unfinished
			return
		}
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("hash timed out after %s", c.timeout)
		}
		c.failed.Add(1)
		c.state.warn(models.Warning{
			Path:    m.Path,
			Reason:  models.ReasonHashFailed,
			Message: msg,
		})
		c.logger.Warn("Hash failed", zap.String("path", m.Path), zap.Error(err))
		s.done = true
		return
	}

	s.entry.Hash = sum
	s.entry.HashAlgorithm = c.algorithm
	c.hashed.Add(1)
	c.hashedBytes.Add(info.Size())
	s.done = true
}
