// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/classreserve/internal/app/store/authkeys"
	"github.com/dalemusser/classreserve/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// keyCleanup runs for the life of the process; Shutdown stops it.
var keyCleanup *workers.KeyCleanup

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Dead admin keys are swept immediately so restarts keep the collection
// tidy, then a background worker repeats the sweep hourly. The auth path
// also rejects and deletes expired keys on use, so the sweeps are
// housekeeping, not correctness.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	keys := authkeys.New(deps.MongoDatabase)

	n, err := keys.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		logger.Warn("expired admin key sweep failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("purged expired admin keys", zap.Int64("count", n))
	}

	keyCleanup = workers.NewKeyCleanup(keys, logger, time.Hour)
	keyCleanup.Start()
	return nil
}
