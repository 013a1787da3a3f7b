package countdown_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"showcase/backend/internal/countdown"
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

// manualSource fires registered callbacks only when Fire is called.
type manualSource struct {
	mu      sync.Mutex
	next    int
	entries map[int]func()
	added   int
}

func newManualSource() *manualSource {
	return &manualSource{entries: make(map[int]func())}
}

func (s *manualSource) Every(interval time.Duration, fn func()) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.added++
	s.entries[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.entries, id)
	}, nil
}

func (s *manualSource) Fire() {
	s.mu.Lock()
	ids := make([]int, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.entries[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Step advances the clock one second and fires every source, n times.
func (s *manualSource) Step(clock *fakeClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(time.Second)
		s.Fire()
	}
}

func (s *manualSource) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

type completion struct {
	ownerID string
	timerID string
	name    string
}

type recordingPresenter struct {
	mu          sync.Mutex
	ticks       map[string][]countdown.Breakdown
	completions []completion
}

func newRecordingPresenter() *recordingPresenter {
	return &recordingPresenter{ticks: make(map[string][]countdown.Breakdown)}
}

func (p *recordingPresenter) TimerTick(ownerID, timerID string, remaining countdown.Breakdown) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ticks[timerID] = append(p.ticks[timerID], remaining)
}

func (p *recordingPresenter) TimerCompleted(ownerID, timerID, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completions = append(p.completions, completion{ownerID: ownerID, timerID: timerID, name: name})
}

func (p *recordingPresenter) tickCount(timerID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.ticks[timerID])
}

func (p *recordingPresenter) completionsFor(timerID string) []completion {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []completion
	for _, c := range p.completions {
		if c.timerID == timerID {
			out = append(out, c)
		}
	}
	return out
}

// countingBlob wraps a slot and counts saves; failSaves makes Save return an error.
type countingBlob struct {
	inner     countdown.BlobStore
	mu        sync.Mutex
	saves     int
	failSaves bool
}

func newCountingBlob() *countingBlob {
	return &countingBlob{
		inner: repository.NewSlot(repository.NewMemoryBlobRepository(), "owner-1", "countdownTimers"),
	}
}

func (b *countingBlob) Load(ctx context.Context) ([]byte, error) {
	return b.inner.Load(ctx)
}

func (b *countingBlob) Save(ctx context.Context, snapshot []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failSaves {
		return errors.New("quota exceeded")
	}
	b.saves++
	return b.inner.Save(ctx, snapshot)
}

func (b *countingBlob) setFailing(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failSaves = fail
}

func (b *countingBlob) saveCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}
