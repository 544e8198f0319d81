// Package store owns the loaded profile set. It pulls records from a Source
// after a fixed artificial delay and hands out immutable snapshots.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wifiview/logging"
	"wifiview/profile"
)

var (
	ErrDuplicateID   = errors.New("duplicate profile id")
	ErrUnknownSource = errors.New("unknown profile source")
)

// Source supplies the raw profile records.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]profile.Record, error)
}

// WarningSource is implemented by sources that can partially succeed. The
// warnings of the most recent Load are returned.
type WarningSource interface {
	Source
	Warnings() []error
}

// Snapshot is one immutable result of a load.
type Snapshot struct {
	Records  []profile.Record
	Source   string
	ScanTime time.Time
	Warnings []error
}

// Store is the single writable owner of the profile set.
type Store struct {
	source Source
	delay  time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot
	loading  bool
}

// New creates a store that has not loaded yet; Loading reports true until
// the first Load finishes.
func New(source Source, delay time.Duration) *Store {
	return &Store{source: source, delay: delay, now: time.Now, loading: true}
}

// Loading reports whether a load is pending or running.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Records returns the current records. Callers must treat the slice as
// read-only.
func (s *Store) Records() []profile.Record {
	return s.Snapshot().Records
}

// SourceName names the backing source.
func (s *Store) SourceName() string {
	return s.source.Name()
}

// Load waits out the artificial delay, reads the source and installs the new
// snapshot. On error the previous snapshot stays in place.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return Snapshot{}, ctx.Err()
		case <-t.C:
		}
	}

	logging.Infof("loading profiles from %s", s.source.Name())
	records, err := s.source.Load(ctx)
	if err != nil {
		logging.Errorf("load from %s failed: %v", s.source.Name(), err)
		return Snapshot{}, fmt.Errorf("load profiles from %s: %w", s.source.Name(), err)
	}
	if err := checkUniqueIDs(records); err != nil {
		logging.Errorf("load from %s rejected: %v", s.source.Name(), err)
		return Snapshot{}, err
	}

	snap := Snapshot{
		Records:  records,
		Source:   s.source.Name(),
		ScanTime: s.now(),
	}
	if ws, ok := s.source.(WarningSource); ok {
		snap.Warnings = ws.Warnings()
		for _, w := range snap.Warnings {
			logging.Warnf("%s: %v", s.source.Name(), w)
		}
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()
	logging.Infof("loaded %d profiles (%d warnings)", len(records), len(snap.Warnings))
	return snap, nil
}

func checkUniqueIDs(records []profile.Record) error {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
