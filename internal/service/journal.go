package service

import (
	"context"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"

	"github.com/google/uuid"
)

// Recorder receives poll results, e.g. Prometheus gauges.
type Recorder interface {
	Record(st komfovent.DeviceState, mode string)
	RecordPoll(ok bool)
}

type nopRecorder struct{}

func (nopRecorder) Record(komfovent.DeviceState, string) {}
func (nopRecorder) RecordPoll(bool)                      {}

// journal appends an event stamped now. A failed append is only logged and
// never fails the device operation that produced it.
func journal(ctx context.Context, repo repository.EventRepo, log *logger.Logger, typ, description string, meta any) {
	journalAt(ctx, repo, log, time.Now(), typ, description, meta)
}

func journalAt(ctx context.Context, repo repository.EventRepo, log *logger.Logger, at time.Time, typ, description string, meta any) {
	err := repo.Append(ctx, models.DeviceEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  at.UTC(),
		Type:        typ,
		Description: description,
		Metadata:    meta,
	})
	if err != nil && log != nil {
		log.Errorw("event_append_failed", "type", typ, "err", err)
	}
}
