package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
	"komfovent_gateway/internal/models"
	"komfovent_gateway/internal/repository"
)

// Poll interval bounds, seconds.
const (
	DefaultPollInterval = 30 * time.Second
	MinPollInterval     = 10 * time.Second
	MaxPollInterval     = 300 * time.Second
)

// PollerService refreshes the snapshot from the panel and journals the
// transitions it observes between polls.
type PollerService struct {
	device    Device
	snapshots repository.SnapshotRepo
	events    repository.EventRepo
	metrics   Recorder
	log       *logger.Logger
	now       func() time.Time

	mu          sync.Mutex
	lost        bool
	authFailed  bool
	lastMode    string
	filterDirty bool
}

func NewPollerService(device Device, snapshots repository.SnapshotRepo, events repository.EventRepo, metrics Recorder, log *logger.Logger) *PollerService {
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &PollerService{
		device:    device,
		snapshots: snapshots,
		events:    events,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// Run polls once right away, then every interval until ctx is done.
func (s *PollerService) Run(ctx context.Context, interval time.Duration) {
	interval = ClampPollInterval(interval)
	_ = s.PollOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = s.PollOnce(ctx)
		}
	}
}

// ClampPollInterval forces d into 10s..300s; zero selects the default.
func ClampPollInterval(d time.Duration) time.Duration {
	switch {
	case d <= 0:
		return DefaultPollInterval
	case d < MinPollInterval:
		return MinPollInterval
	case d > MaxPollInterval:
		return MaxPollInterval
	}
	return d
}

// PollOnce reads the panel and stores the snapshot. A failed read keeps the
// previous reading but marks it unavailable.
func (s *PollerService) PollOnce(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.device.GetState(ctx)
	if err != nil {
		s.metrics.RecordPoll(false)
		s.onFailure(ctx, err)
		return err
	}
	s.onSuccess(ctx)

	mode, ok := st.CanonicalMode(s.device.Profile())
	if !ok {
		mode = strings.ToLower(strings.TrimSpace(st.Mode))
	}
	if s.lastMode != "" && mode != s.lastMode {
		s.journal(ctx, models.EventModeChanged,
			fmt.Sprintf("mode changed from %s to %s", s.lastMode, mode),
			map[string]any{"from": s.lastMode, "to": mode})
	}
	s.lastMode = mode

	if dirty, known := st.FilterDirty(); known {
		if dirty && !s.filterDirty {
			s.journal(ctx, models.EventFilterWarning,
				fmt.Sprintf("filter contamination at %d%%", *st.FilterContamination),
				map[string]any{"contamination": *st.FilterContamination, "threshold": komfovent.FilterWarningThreshold})
		}
		s.filterDirty = dirty
	}

	snap := models.Snapshot{State: st, Mode: mode, ReadAt: s.now().UTC(), Available: true}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.metrics.RecordPoll(false)
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.metrics.Record(st, mode)
	s.metrics.RecordPoll(true)
	return nil
}

func (s *PollerService) onFailure(ctx context.Context, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	if merr := s.snapshots.MarkUnavailable(context.WithoutCancel(ctx), err.Error(), s.now()); merr != nil && s.log != nil {
		s.log.Errorw("snapshot_mark_failed", "err", merr)
	}
	if errors.Is(err, komfovent.ErrAuth) {
		// Every rejected poll is an error: it will not heal on its own.
		if s.log != nil {
			s.log.Errorw("poll_auth_failed", "err", err)
		}
		if !s.authFailed {
			s.journal(ctx, models.EventAuthFailed, "panel rejected the credentials", nil)
		}
		s.authFailed = true
		return
	}
	if !s.lost {
		if s.log != nil {
			s.log.Warnw("poll_connection_lost", "host", s.device.BaseURL(), "err", err)
		}
		s.journal(ctx, models.EventConnectionLost, "panel unreachable",
			map[string]any{"error": err.Error()})
	}
	s.lost = true
}

func (s *PollerService) onSuccess(ctx context.Context) {
	if s.lost {
		if s.log != nil {
			s.log.Infow("poll_connection_restored", "host", s.device.BaseURL())
		}
		s.journal(ctx, models.EventConnectionRestored, "panel reachable again", nil)
	}
	s.lost = false
	s.authFailed = false
}

// journal stamps poller events with the poll clock.
func (s *PollerService) journal(ctx context.Context, typ, description string, meta any) {
	journalAt(ctx, s.events, s.log, s.now(), typ, description, meta)
}
