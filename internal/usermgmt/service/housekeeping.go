package service

import (
	"log/slog"
	"time"
)

// Evictor drops sessions idle for longer than the given duration and reports
// how many went.
type Evictor interface {
	Evict(idle time.Duration) int
}

// HousekeepingService periodically evicts idle screens so abandoned sessions
// do not accumulate.
type HousekeepingService struct {
	Evictor  Evictor
	Logger   *slog.Logger
	Interval time.Duration
	IdleTTL  time.Duration

	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeepingService defaults a non-positive interval to 5 minutes and a
// non-positive TTL to 30 minutes.
func NewHousekeepingService(ev Evictor, logger *slog.Logger, interval, idleTTL time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &HousekeepingService{
		Evictor:  ev,
		Logger:   logger,
		Interval: interval,
		IdleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	s.started = true
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "idle_ttl", s.IdleTTL)
}

// Stop blocks until the worker has exited. It does nothing if Start was never
// called.
func (s *HousekeepingService) Stop() {
	if !s.started {
		return
	}
	s.started = false
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce()
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs a single eviction pass.
func (s *HousekeepingService) RunOnce() int {
	n := s.Evictor.Evict(s.IdleTTL)
	if n > 0 {
		s.Logger.Info("evicted idle screens", "count", n)
	} else {
		s.Logger.Debug("no idle screens to evict")
	}
	return n
}
