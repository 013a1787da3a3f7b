package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"showcase/backend/internal/countdown"
	apperrors "showcase/backend/internal/errors"
	"showcase/backend/internal/events"
	"showcase/backend/internal/logger"
	"showcase/backend/internal/model"
	"showcase/backend/internal/repository"
)

const FormattedTargetLayout = "January 2, 2006 at 03:04 PM"

type CountdownService struct {
	blobs     repository.BlobRepository
	scheduler *countdown.Scheduler
	hub       *events.Hub
	clock     countdown.Clock
	loc       *time.Location

	mu       sync.Mutex
	stores   map[string]*countdown.Store
	accounts map[string]*sync.Mutex
}

type CreateTimerInput struct {
	Name       string
	TargetDate string
	TargetTime string
}

type TimerView struct {
	model.TimerRecord
	Remaining       countdown.Display `json:"remaining"`
	RemainingMillis int64             `json:"remainingMillis"`
	FormattedTarget string            `json:"formattedTarget"`
	Ticking         bool              `json:"ticking"`
}

func NewCountdownService(
	blobs repository.BlobRepository,
	scheduler *countdown.Scheduler,
	hub *events.Hub,
	clock countdown.Clock,
	loc *time.Location,
) *CountdownService {
	if clock == nil {
		clock = countdown.RealClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &CountdownService{
		blobs:     blobs,
		scheduler: scheduler,
		hub:       hub,
		clock:     clock,
		loc:       loc,
		stores:    make(map[string]*countdown.Store),
		accounts:  make(map[string]*sync.Mutex),
	}
}

// Restore loads every account that has saved timers and resumes their
// countdowns. It returns the number of accounts loaded.
func (s *CountdownService) Restore(ctx context.Context) (int, error) {
	owners, err := s.blobs.ListOwners(ctx, model.KeyCountdownTimers)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, ownerID := range owners {
		if _, apiErr := s.storeFor(ctx, ownerID); apiErr != nil {
			logger.Warn("countdown: restore account failed",
				zap.String("owner_id", ownerID),
				zap.String("code", apiErr.Code))
			continue
		}
		restored++
	}
	return restored, nil
}

func (s *CountdownService) List(ctx context.Context, ownerID string) ([]TimerView, *apperrors.APIError) {
	store, apiErr := s.storeFor(ctx, ownerID)
	if apiErr != nil {
		return nil, apiErr
	}

	records := store.List()
	views := make([]TimerView, 0, len(records))
	for _, record := range records {
		views = append(views, s.toView(record))
	}
	return views, nil
}

func (s *CountdownService) Create(ctx context.Context, ownerID string, input CreateTimerInput) (*TimerView, *apperrors.APIError) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperrors.BadRequest("empty_field", "Please enter a timer name")
	}
	if strings.TrimSpace(input.TargetDate) == "" {
		return nil, apperrors.BadRequest("empty_field", "Please select a target date")
	}

	target, err := countdown.ParseTarget(input.TargetDate, input.TargetTime, s.loc)
	if err != nil {
		return nil, countdownError(err)
	}

	unlock := s.lockAccount(ownerID)
	defer unlock()

	store, apiErr := s.storeFor(ctx, ownerID)
	if apiErr != nil {
		return nil, apiErr
	}

	record, err := store.Create(ctx, input.Name, target)
	if err != nil {
		return nil, countdownError(err)
	}

	if err := s.scheduler.Attach(store, record); err != nil {
		logger.Error("countdown: attach new timer", err,
			zap.String("owner_id", ownerID),
			zap.String("timer_id", record.ID))
		if delErr := store.Delete(ctx, record.ID); delErr != nil {
			logger.Error("countdown: roll back unscheduled timer", delErr,
				zap.String("timer_id", record.ID))
		}
		return nil, apperrors.Internal("failed to schedule timer")
	}

	logger.Info("countdown: timer created",
		zap.String("owner_id", ownerID),
		zap.String("timer_id", record.ID),
		zap.Time("target", record.TargetDateTime))

	current, ok := store.Get(record.ID)
	if !ok {
		current = record
	}
	view := s.toView(current)
	return &view, nil
}

// Delete stops the countdown first so no tick observes a record that is gone.
func (s *CountdownService) Delete(ctx context.Context, ownerID, timerID string) *apperrors.APIError {
	unlock := s.lockAccount(ownerID)
	defer unlock()

	store, apiErr := s.storeFor(ctx, ownerID)
	if apiErr != nil {
		return apiErr
	}

	record, ok := store.Get(timerID)
	if !ok {
		return apperrors.NotFound("timer_not_found", "timer not found")
	}

	wasTicking := s.scheduler.Cancel(timerID)
	if err := store.Delete(ctx, timerID); err != nil {
		if wasTicking && !errors.Is(err, countdown.ErrNotFound) {
			if current, ok := store.Get(timerID); ok {
				if attachErr := s.scheduler.Attach(store, current); attachErr != nil {
					logger.Error("countdown: resume after failed delete", attachErr,
						zap.String("timer_id", timerID))
				}
			}
		}
		return countdownError(err)
	}

	logger.Info("countdown: timer deleted",
		zap.String("owner_id", ownerID),
		zap.String("timer_id", timerID),
		zap.Bool("completed", record.Completed))
	return nil
}

// Subscribe streams tick and completion events of ownerID. Timers of the
// account are loaded first so a fresh process starts ticking them.
func (s *CountdownService) Subscribe(ctx context.Context, ownerID string) (<-chan events.Event, func(), *apperrors.APIError) {
	if _, apiErr := s.storeFor(ctx, ownerID); apiErr != nil {
		return nil, nil, apiErr
	}
	ch, unsubscribe := s.hub.Subscribe(ownerID)
	return ch, unsubscribe, nil
}

// lockAccount serialises create and delete of one account so a record is
// never attached after its deletion.
func (s *CountdownService) lockAccount(ownerID string) func() {
	s.mu.Lock()
	lock, ok := s.accounts[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		s.accounts[ownerID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func (s *CountdownService) storeFor(ctx context.Context, ownerID string) (*countdown.Store, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[ownerID]; ok {
		return store, nil
	}

	store := countdown.NewStore(ownerID,
		repository.NewSlot(s.blobs, ownerID, model.KeyCountdownTimers),
		countdown.WithClock(s.clock),
		countdown.WithLocation(s.loc))

	records, err := store.LoadAll(ctx)
	if err != nil {
		logger.Error("countdown: load timers", err, zap.String("owner_id", ownerID))
		return nil, countdownError(err)
	}

	for _, record := range records {
		if err := s.scheduler.Attach(store, record); err != nil && !errors.Is(err, countdown.ErrAlreadyScheduled) {
			logger.Error("countdown: attach stored timer", err,
				zap.String("owner_id", ownerID),
				zap.String("timer_id", record.ID))
		}
	}

	s.stores[ownerID] = store
	return store, nil
}

func (s *CountdownService) toView(record model.TimerRecord) TimerView {
	remaining := record.TargetDateTime.Sub(s.clock.Now())
	if remaining < 0 || record.Completed {
		remaining = 0
	}
	return TimerView{
		TimerRecord:     record,
		Remaining:       countdown.Decompose(remaining).Display(),
		RemainingMillis: remaining.Milliseconds(),
		FormattedTarget: record.TargetDateTime.In(s.loc).Format(FormattedTargetLayout),
		Ticking:         s.scheduler.IsTicking(record.ID),
	}
}

func countdownError(err error) *apperrors.APIError {
	switch {
	case errors.Is(err, countdown.ErrEmptyField):
		return apperrors.BadRequest("empty_field", "Please enter a timer name")
	case errors.Is(err, countdown.ErrInvalidDate):
		return apperrors.BadRequest("invalid_date", "Please select a future date and time")
	case errors.Is(err, countdown.ErrNotFound):
		return apperrors.NotFound("timer_not_found", "timer not found")
	case errors.Is(err, countdown.ErrUnavailableStorage):
		return apperrors.ServiceUnavailable("unavailable_storage", "timer storage is unavailable")
	default:
		return apperrors.Internal("")
	}
}
