package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"shopsync-ingestion-layer/internal/application"
	"shopsync-ingestion-layer/internal/domain"
)

// SyncTrigger fires periodic sync passes: an incremental pass every
// interval, upgraded to a full pass once per day at FullSyncHour.
type SyncTrigger struct {
	syncService  *application.SyncService
	interval     time.Duration
	fullSyncHour int
	logger       zerolog.Logger

	mu           sync.Mutex
	running      bool
	stop         chan struct{}
	wg           sync.WaitGroup
	lastFullDate string
}

// NewSyncTrigger creates a new sync trigger
func NewSyncTrigger(syncService *application.SyncService, interval time.Duration, fullSyncHour int, logger zerolog.Logger) *SyncTrigger {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SyncTrigger{
		syncService:  syncService,
		interval:     interval,
		fullSyncHour: fullSyncHour,
		logger:       logger,
	}
}

// Start launches the trigger loop. Calling Start on a running trigger is a
// no-op.
func (t *SyncTrigger) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stop = make(chan struct{})

	t.wg.Add(1)
	go t.runLoop(ctx)

	t.logger.Info().
		Dur("interval", t.interval).
		Int("fullSyncHour", t.fullSyncHour).
		Msg("Sync trigger started")
}

// Stop halts the trigger loop and waits for an in-flight pass to finish.
func (t *SyncTrigger) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	close(t.stop)
	t.mu.Unlock()

	t.wg.Wait()
	t.logger.Info().Msg("Sync trigger stopped")
}

func (t *SyncTrigger) runLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.stop:
			return
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			t.firePass(ctx, now)
		}
	}
}

func (t *SyncTrigger) firePass(ctx context.Context, now time.Time) {
	mode := t.passMode(now)

	t.logger.Info().Str("mode", string(mode)).Msg("Scheduled sync pass firing")
	if _, err := t.syncService.SyncAllTenants(ctx, mode); err != nil {
		t.logger.Error().Err(err).Str("mode", string(mode)).Msg("Scheduled sync pass failed")
	}
}

// passMode picks the mode for a tick. The first tick landing at or after
// FullSyncHour each day upgrades to a full pass, so intervals above one hour
// cannot skip the daily window.
func (t *SyncTrigger) passMode(now time.Time) domain.SyncMode {
	today := now.Format("2006-01-02")
	if now.Hour() >= t.fullSyncHour && t.lastFullDate != today {
		t.lastFullDate = today
		return domain.SyncModeFull
	}
	return domain.SyncModeIncremental
}
