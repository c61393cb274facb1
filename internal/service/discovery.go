package service

import (
	"context"
	"errors"
	"time"

	"komfovent_gateway/internal/komfovent"
	"komfovent_gateway/internal/logger"
)

var errDiscoveryDisabled = errors.New("discovery is not configured")

type DiscoveryService struct {
	sweeper Discovery
	log     *logger.Logger
}

func NewDiscoveryService(sweeper Discovery, log *logger.Logger) *DiscoveryService {
	return &DiscoveryService{sweeper: sweeper, log: log}
}

// Discover returns the panels answering on the local subnet, never nil on success.
func (s *DiscoveryService) Discover(ctx context.Context) ([]komfovent.DiscoveredDevice, error) {
	if s.sweeper == nil {
		return nil, errDiscoveryDisabled
	}
	start := time.Now()
	found, err := s.sweeper.Discover(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("discovery_failed", "err", err, "elapsed", time.Since(start))
		}
		return nil, err
	}
	if found == nil {
		found = []komfovent.DiscoveredDevice{}
	}
	if s.log != nil {
		s.log.Infow("discovery_done", "found", len(found), "elapsed", time.Since(start))
	}
	return found, nil
}
