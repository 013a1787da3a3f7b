package countdown

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"showcase/backend/internal/model"
	"showcase/backend/internal/repository"
)

// BlobStore persists one opaque snapshot.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, snapshot []byte) error
}

// Store is the ordered timer collection of one account. Every mutation writes
// the full collection back to the blob store.
type Store struct {
	ownerID string
	blob    BlobStore
	clock   Clock
	loc     *time.Location
	newID   func() string

	mu      sync.Mutex
	records []model.TimerRecord
}

type StoreOption func(*Store)

func WithClock(clock Clock) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

func WithLocation(loc *time.Location) StoreOption {
	return func(s *Store) {
		s.loc = loc
	}
}

func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

func NewStore(ownerID string, blob BlobStore, opts ...StoreOption) *Store {
	s := &Store{
		ownerID: ownerID,
		blob:    blob,
		clock:   RealClock{},
		loc:     time.Local,
		newID:   uuid.NewString,
		records: []model.TimerRecord{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) OwnerID() string {
	return s.ownerID
}

func (s *Store) Location() *time.Location {
	return s.loc
}

// Create validates and appends a new timer. A failed write leaves the store unchanged.
func (s *Store) Create(ctx context.Context, name string, target time.Time) (model.TimerRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TimerRecord{}, fmt.Errorf("%w: timer name is required", ErrEmptyField)
	}
	if !target.After(s.clock.Now()) {
		return model.TimerRecord{}, fmt.Errorf("%w: target must be in the future", ErrInvalidDate)
	}

	local := target.In(s.loc)
	record := model.TimerRecord{
		Name:           name,
		TargetDate:     local.Format(model.TargetDateLayout),
		TargetTime:     local.Format(model.TargetTimeLayout),
		TargetDateTime: target.UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = s.newID()
	for s.indexLocked(record.ID) >= 0 {
		record.ID = s.newID()
	}

	s.records = append(s.records, record)
	if err := s.persistLocked(ctx); err != nil {
		s.records = s.records[:len(s.records)-1]
		return model.TimerRecord{}, err
	}
	return record, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	previous := s.records
	next := make([]model.TimerRecord, 0, len(s.records)-1)
	next = append(next, s.records[:idx]...)
	next = append(next, s.records[idx+1:]...)
	s.records = next

	if err := s.persistLocked(ctx); err != nil {
		s.records = previous
		return err
	}
	return nil
}

// MarkCompleted is monotone: the in-memory flag stays set even when the write
// fails, and the next successful mutation persists it.
func (s *Store) MarkCompleted(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if s.records[idx].Completed {
		return nil
	}
	s.records[idx].Completed = true
	return s.persistLocked(ctx)
}

// LoadAll replaces in-memory state with the persisted snapshot and returns it
// in insertion order.
func (s *Store) LoadAll(ctx context.Context) ([]model.TimerRecord, error) {
	raw, err := s.blob.Load(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrUnavailableStorage, err)
	}

	records := []model.TimerRecord{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode timers: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = dedupe(records)
	return s.copyLocked(), nil
}

func (s *Store) List() []model.TimerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLocked()
}

func (s *Store) Get(id string) (model.TimerRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return model.TimerRecord{}, false
	}
	return s.records[idx], true
}

func (s *Store) persistLocked(ctx context.Context) error {
	snapshot, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("encode timers: %w", err)
	}
	if err := s.blob.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailableStorage, err)
	}
	return nil
}

func (s *Store) indexLocked(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) copyLocked() []model.TimerRecord {
	out := make([]model.TimerRecord, len(s.records))
	copy(out, s.records)
	return out
}

// dedupe keeps the first record for each id.
func dedupe(records []model.TimerRecord) []model.TimerRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.TimerRecord, 0, len(records))
	for _, record := range records {
		if _, ok := seen[record.ID]; ok {
			continue
		}
		seen[record.ID] = struct{}{}
		out = append(out, record)
	}
	return out
}

// ParseTarget reads the date and time inputs of the timer form in loc. An
// empty time means midnight.
func ParseTarget(date, clock string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, fmt.Errorf("%w: target date is required", ErrInvalidDate)
	}
	if clock == "" {
		clock = "00:00"
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q %q", ErrInvalidDate, date, clock)
}
