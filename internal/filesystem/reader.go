package filesystem

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"sync"
	"time"

	"github.com/IvanShishkin/stconflicts/internal/config"
	"golang.org/x/crypto/sha3"
)

// ChunkSize is the read size used while hashing
const ChunkSize = 64 * 1024

var chunkPool = sync.Pool{
	New: func() any {
		buf := make([]byte, ChunkSize)
		return &buf
	},
}

// NewHash returns a fresh hash state for the named algorithm
func NewHash(algorithm string) (hash.Hash, error) {
	switch algorithm {
	case config.HashMD5:
		return md5.New(), nil
	case config.HashSHA256, "":
		return sha256.New(), nil
	case config.HashSHA3256:
		return sha3.New256(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm: %s", algorithm)
	}
}

// HashFile streams the file through the hash in fixed-size chunks and
// returns the hex digest. ctx is checked before every chunk.
func HashFile(ctx context.Context, path, algorithm string) (string, error) {
	h, err := NewHash(algorithm)
	if err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	bufp := chunkPool.Get().(*[]byte)
	defer chunkPool.Put(bufp)
	buf := *bufp

	for {
		if err := expired(ctx); err != nil {
			return "", err
		}
		n, err := f.Read(buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// expired is ctx.Err that also honours a deadline whose timer has not fired yet
func expired(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return nil
}
