package worker

import (
	"context"
	"log/slog"
	"time"

	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/usecase/commands"
)

// Sweeper closes overdue PENDING reservations on an interval. Lazy expiry on
// read covers the transactions buyers still poll; the sweeper catches the
// abandoned ones.
type Sweeper struct {
	expiry    commands.ExpiryCommands
	interval  time.Duration
	batchSize int
	stop      chan struct{}
	done      chan struct{}
}

func NewSweeper(expiry commands.ExpiryCommands, cfg config.WorkerConfig) *Sweeper {
	return &Sweeper{
		expiry:    expiry,
		interval:  cfg.SweepInterval,
		batchSize: cfg.SweepBatchSize,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go s.run()
}

func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Sweeper) sweepOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	swept, err := s.expiry.SweepExpired(ctx, s.batchSize)
	if err != nil {
		slog.Error("expiry sweep failed", "error", err.Error())
		return
	}
	if swept > 0 {
		slog.Info("expired reservations released", "count", swept)
	}
}
