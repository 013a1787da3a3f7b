package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"showcase/backend/internal/repository"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type manualSource struct {
	mu      sync.Mutex
	next    int
	entries map[int]func()
}

func newManualSource() *manualSource {
	return &manualSource{entries: make(map[int]func())}
}

func (s *manualSource) Every(interval time.Duration, fn func()) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.entries[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.entries, id)
	}, nil
}

// Step advances the clock one second and fires every entry, n times.
func (s *manualSource) Step(clock *fakeClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
		s.mu.Lock()
		fns := make([]func(), 0, len(s.entries))
		for _, fn := range s.entries {
			fns = append(fns, fn)
		}
		s.mu.Unlock()
		for _, fn := range fns {
			fn()
		}
	}
}

func (s *manualSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// flakyBlobs fails every call while down is set.
type flakyBlobs struct {
	*repository.MemoryBlobRepository
	mu   sync.Mutex
	down bool
}

func newFlakyBlobs() *flakyBlobs {
	return &flakyBlobs{MemoryBlobRepository: repository.NewMemoryBlobRepository()}
}

func (b *flakyBlobs) setDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = down
}

func (b *flakyBlobs) isDown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.down
}

var errDiskFull = errors.New("disk full")

func (b *flakyBlobs) Load(ctx context.Context, ownerID, key string) ([]byte, error) {
	if b.isDown() {
		return nil, errDiskFull
	}
	return b.MemoryBlobRepository.Load(ctx, ownerID, key)
}

func (b *flakyBlobs) Save(ctx context.Context, ownerID, key string, value []byte) error {
	if b.isDown() {
		return errDiskFull
	}
	return b.MemoryBlobRepository.Save(ctx, ownerID, key, value)
}
