package countdown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"showcase/backend/internal/logger"
	"showcase/backend/internal/model"
)

// Presenter receives the output of ticks. Calls happen while the scheduler
// holds its lock, so implementations must not block or call back into it.
type Presenter interface {
	TimerTick(ownerID, timerID string, remaining Breakdown)
	TimerCompleted(ownerID, timerID, name string)
}

type timerState int

const (
	stateTicking timerState = iota
	stateCompleted
	stateCancelled
)

type activeTimer struct {
	store  *Store
	record model.TimerRecord
	cancel func()
	state  timerState
}

// Scheduler keeps one periodic source per ticking record and drives its
// single completion. Ticks, attaches and cancels are serialised by mu.
type Scheduler struct {
	clock          Clock
	source         TickSource
	presenter      Presenter
	interval       time.Duration
	persistTimeout time.Duration

	mu     sync.Mutex
	active map[string]*activeTimer
}

func NewScheduler(clock Clock, source TickSource, presenter Presenter, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		clock:          clock,
		source:         source,
		presenter:      presenter,
		interval:       interval,
		persistTimeout: 10 * time.Second,
		active:         make(map[string]*activeTimer),
	}
}

// Attach starts ticking record. Completed records and records no longer in
// store are ignored. The first tick runs before Attach returns, so a record
// whose target already passed completes immediately without registering a
// source.
func (s *Scheduler) Attach(store *Store, record model.TimerRecord) error {
	if record.Completed {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := store.Get(record.ID); !ok {
		return nil
	}

	if _, ok := s.active[record.ID]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyScheduled, record.ID)
	}

	timer := &activeTimer{store: store, record: record, state: stateTicking}
	s.active[record.ID] = timer

	s.tickLocked(timer)
	if timer.state != stateTicking {
		return nil
	}

	cancel, err := s.source.Every(s.interval, func() { s.tick(timer) })
	if err != nil {
		delete(s.active, record.ID)
		return fmt.Errorf("schedule timer %s: %w", record.ID, err)
	}
	timer.cancel = cancel
	return nil
}

// Cancel stops the source of a ticking record. It reports whether a source was
// active.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.active[id]
	if !ok {
		return false
	}
	s.releaseLocked(timer, stateCancelled)
	return true
}

func (s *Scheduler) IsTicking(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[id]
	return ok
}

func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Stop cancels every source.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, timer := range s.active {
		s.releaseLocked(timer, stateCancelled)
	}
}

func (s *Scheduler) tick(timer *activeTimer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickLocked(timer)
}

func (s *Scheduler) tickLocked(timer *activeTimer) {
	if timer.state != stateTicking {
		return
	}

	record := timer.record
	ownerID := timer.store.OwnerID()
	remaining := record.TargetDateTime.Sub(s.clock.Now())
	if remaining > 0 {
		s.presenter.TimerTick(ownerID, record.ID, Decompose(remaining))
		return
	}

	s.releaseLocked(timer, stateCompleted)

	ctx, cancel := context.WithTimeout(context.Background(), s.persistTimeout)
	defer cancel()
	if err := timer.store.MarkCompleted(ctx, record.ID); err != nil {
		logger.Error("countdown: persist completion", err,
			zap.String("owner_id", ownerID),
			zap.String("timer_id", record.ID))
	}

	logger.Info("countdown: timer completed",
		zap.String("owner_id", ownerID),
		zap.String("timer_id", record.ID),
		zap.String("name", record.Name))
	s.presenter.TimerCompleted(ownerID, record.ID, record.Name)
}

func (s *Scheduler) releaseLocked(timer *activeTimer, final timerState) {
	timer.state = final
	if timer.cancel != nil {
		timer.cancel()
		timer.cancel = nil
	}
	if current, ok := s.active[timer.record.ID]; ok && current == timer {
		delete(s.active, timer.record.ID)
	}
}
