// internal/app/system/workers/keycleanup.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/classreserve/internal/app/store/authkeys"
	"go.uber.org/zap"
)

// KeyCleanup is a background worker that sweeps expired admin keys.
// The auth path already deletes an expired key the moment someone presents
// it; this worker catches the ones nobody ever presents again.
type KeyCleanup struct {
	keys     *authkeys.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewKeyCleanup creates a new key cleanup worker.
func NewKeyCleanup(keys *authkeys.Store, logger *zap.Logger, interval time.Duration) *KeyCleanup {
	return &KeyCleanup{
		keys:     keys,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *KeyCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("admin key cleanup worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *KeyCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("admin key cleanup worker stopped")
}

func (w *KeyCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *KeyCleanup) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.keys.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("failed to purge expired admin keys", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("purged expired admin keys", zap.Int64("count", count))
	}
}
