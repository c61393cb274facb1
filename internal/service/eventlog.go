package service

import (
	"context"
	"fmt"
	"strings"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

// MaxLogLimit caps a single journal page.
const MaxLogLimit = 1000

var (
	errInvalidTimeRange = fmt.Errorf("%w: from must not be after to", komfovent.ErrValidation)
	errUnknownEventType = fmt.Errorf("%w: unknown event type", komfovent.ErrValidation)
)

// EventLogService reads the device journal written by the poller and the
// control services.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List returns journal entries newest first. Bounds are compared in UTC and
// the type is matched case-insensitively.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error) {
	q, err := journalQuery(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, q.From, q.To, q.Type, q.Limit)
}

// journalQuery turns a caller filter into repository arguments.
func journalQuery(f LogFilter) (LogFilter, error) {
	q := LogFilter{
		Type:  strings.ToUpper(strings.TrimSpace(f.Type)),
		Limit: normalizeLimit(f.Limit),
	}
	if !f.From.IsZero() {
		q.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		q.To = f.To.UTC()
	}
	if q.Type != "" && !models.IsEventType(q.Type) {
		return LogFilter{}, fmt.Errorf("%w %q", errUnknownEventType, f.Type)
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return LogFilter{}, errInvalidTimeRange
	}
	return q, nil
}

func normalizeLimit(n int) int {
	if n <= 0 || n > MaxLogLimit {
		return MaxLogLimit
	}
	return n
}
