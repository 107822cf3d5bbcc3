package auth

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/growcoach/jobboard/pkg/repository"
)

// Janitor periodically deletes blacklist records whose token expiry has
// passed. An expired token is rejected by signature validation anyway, so
// dropping its record only reclaims space and never un-revokes anything.
type Janitor struct {
	repo     repository.BlacklistRepo
	logger   *slog.Logger
	interval time.Duration
	stop     chan struct{}
	wg       sync.WaitGroup
}

func NewJanitor(repo repository.BlacklistRepo, logger *slog.Logger, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{repo: repo, logger: logger, interval: interval, stop: make(chan struct{})}
}

// Start launches the sweep goroutine
func (j *Janitor) Start(ctx context.Context) {
	j.wg.Add(1)
	go j.run(ctx)
}

// Stop signals the janitor to stop and waits for it
func (j *Janitor) Stop() {
	close(j.stop)
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-j.stop:
			j.logger.Info("blacklist janitor stopping")
			return
		case <-ctx.Done():
			j.logger.Info("context canceled, blacklist janitor exiting")
			return
		case <-ticker.C:
			n, err := j.repo.DeleteExpired(ctx, time.Now().Unix())
			if err != nil {
				j.logger.Error("sweep expired blacklist records", "err", err)
				continue
			}
			if n > 0 {
				j.logger.Info("swept expired blacklist records", "count", n)
			}
		}
	}
}
