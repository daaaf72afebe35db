package artifact

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunJanitor sweeps the store every interval until ctx is done.
func RunJanitor(ctx context.Context, store Store, maxAge, interval time.Duration, log *zap.SugaredLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Sweep(ctx, maxAge)
			if err != nil {
				log.Warnw("[artifact-cleanup] error", "error", err)
				continue
			}
			if n > 0 {
				log.Infow("[artifact-cleanup] removed expired audio", "count", n)
			}
		}
	}
}
