package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper is implemented by caches that can drop expired entries eagerly.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// RunSweeper calls s.Sweep every interval until ctx is done.
// Expiry stays correct without it; sweeping only bounds storage growth.
func RunSweeper(ctx context.Context, s Sweeper, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("coordinate cache sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int("removed", n).Msg("coordinate cache swept")
			}
		}
	}
}
