package service

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"showcase/backend/internal/countdown"
	apperrors "showcase/backend/internal/errors"
	"showcase/backend/internal/logger"
	"showcase/backend/internal/model"
	"showcase/backend/internal/repository"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	minNameLength    = 2
	minSubjectLength = 5
	minMessageLength = 10
)

type ContactService struct {
	blobs repository.BlobRepository
	clock countdown.Clock

	mu sync.Mutex
}

type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewContactService(blobs repository.BlobRepository, clock countdown.Clock) *ContactService {
	if clock == nil {
		clock = countdown.RealClock{}
	}
	return &ContactService{blobs: blobs, clock: clock}
}

// Validate returns one FieldError per failing field, in form order.
func (in ContactInput) Validate() []FieldError {
	var errs []FieldError
	if len([]rune(strings.TrimSpace(in.Name))) < minNameLength {
		errs = append(errs, FieldError{Field: "name", Code: "empty_field",
			Message: "Please enter a valid name (at least 2 characters)"})
	}
	if !emailPattern.MatchString(strings.TrimSpace(in.Email)) {
		errs = append(errs, FieldError{Field: "email", Code: "invalid_email_format",
			Message: "Please enter a valid email address"})
	}
	if len([]rune(strings.TrimSpace(in.Subject))) < minSubjectLength {
		errs = append(errs, FieldError{Field: "subject", Code: "empty_field",
			Message: "Subject must be at least 5 characters long"})
	}
	if len([]rune(strings.TrimSpace(in.Message))) < minMessageLength {
		errs = append(errs, FieldError{Field: "message", Code: "empty_field",
			Message: "Message must be at least 10 characters long"})
	}
	return errs
}

// Submit appends a valid message to the account's write-only contact log.
func (s *ContactService) Submit(ctx context.Context, ownerID string, input ContactInput) (*model.ContactMessage, *apperrors.APIError) {
	if fieldErrs := input.Validate(); len(fieldErrs) > 0 {
		return nil, apperrors.BadRequest("validation_failed", "please correct the highlighted fields").
			WithDetails(map[string]interface{}{"fields": fieldErrs})
	}

	message := model.ContactMessage{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		Timestamp: s.clock.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	messages := []model.ContactMessage{}
	if _, err := loadJSON(ctx, s.blobs, ownerID, model.KeyContactMessages, &messages); err != nil {
		return nil, blobError("contact: load messages", ownerID, err)
	}
	messages = append(messages, message)
	if err := saveJSON(ctx, s.blobs, ownerID, model.KeyContactMessages, messages); err != nil {
		return nil, blobError("contact: save messages", ownerID, err)
	}

	logger.Info("contact: message stored",
		zap.String("owner_id", ownerID),
		zap.Int("total", len(messages)))
	return &message, nil
}

// Count reports how many messages the account has submitted.
func (s *ContactService) Count(ctx context.Context, ownerID string) (int, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := []model.ContactMessage{}
	if _, err := loadJSON(ctx, s.blobs, ownerID, model.KeyContactMessages, &messages); err != nil {
		return 0, blobError("contact: load messages", ownerID, err)
	}
	return len(messages), nil
}
