package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// staleAfter is how long a lock file may be held before a new build is
// permitted to reclaim it, per the concurrency model's 1-hour staleness
// rule.
const staleAfter = time.Hour

// lockPayload is the JSON body written into the lock file, identifying the
// process and build run holding it.
type lockPayload struct {
	PID       int       `json:"pid"`
	BuildID   string    `json:"build_id"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// BuildLock provides exclusive, cross-process ownership of an index
// directory during a build, backed by gofrs/flock with a PID-stamped
// payload so a stale lock (holder crashed) can be identified and reclaimed
// after staleAfter elapses.
type BuildLock struct {
	path    string
	flock   *flock.Flock
	buildID string
	locked  bool
}

// NewBuildLock creates a lock for root's ".build.lock" file.
func NewBuildLock(root string) *BuildLock {
	path := filepath.Join(root, ".build.lock")
	return &BuildLock{
		path:    path,
		flock:   flock.New(path),
		buildID: uuid.NewString(),
	}
}

// TryLock attempts to acquire the lock without blocking. If the existing
// lock file is older than staleAfter, it is removed and reclaimed first.
func (l *BuildLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, fmt.Errorf("create index directory: %w", err)
	}

	if info, err := os.Stat(l.path); err == nil {
		if time.Since(info.ModTime()) > staleAfter {
			_ = os.Remove(l.path)
		}
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire build lock: %w", err)
	}
	if !acquired {
		return false, nil
	}

	payload := lockPayload{PID: os.Getpid(), BuildID: l.buildID, AcquiredAt: time.Now().UTC()}
	data, _ := json.Marshal(payload)
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		_ = l.flock.Unlock()
		return false, fmt.Errorf("write lock payload: %w", err)
	}

	l.locked = true
	return true, nil
}

// Unlock releases the lock. Safe to call on an unlocked BuildLock.
func (l *BuildLock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	return l.flock.Unlock()
}

// BuildID returns the UUID this process's build run is tagged with.
func (l *BuildLock) BuildID() string {
	return l.buildID
}
