package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"rifa-hub/internal/infra/notify"
	"rifa-hub/internal/pkg/clock"
	"rifa-hub/internal/pkg/config"
	"rifa-hub/internal/usecase/shared"
)

// Notifier drains the notification_jobs queue and hands each job to the
// sender. Claims use SKIP LOCKED so multiple instances never double-send.
type Notifier struct {
	uow       shared.UnitOfWork
	sender    notify.Sender
	clock     clock.Clock
	interval  time.Duration
	batchSize int
	stop      chan struct{}
	done      chan struct{}
}

func NewNotifier(uow shared.UnitOfWork, sender notify.Sender, clk clock.Clock, cfg config.WorkerConfig) *Notifier {
	return &Notifier{
		uow:       uow,
		sender:    sender,
		clock:     clk,
		interval:  cfg.NotifyInterval,
		batchSize: cfg.NotifyBatchSize,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (n *Notifier) Start() {
	go n.run()
}

func (n *Notifier) Stop() {
	close(n.stop)
	<-n.done
}

func (n *Notifier) run() {
	defer close(n.done)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	for {
		select {
		case <-n.stop:
			return
		case <-ticker.C:
			n.drainOnce()
		}
	}
}

func (n *Notifier) drainOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), n.interval*2)
	defer cancel()

	err := n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		jobs, err := tx.Notifications().ClaimQueued(ctx, n.clock.Now(), n.batchSize)
		if err != nil {
			return err
		}

		for _, job := range jobs {
			if err := n.deliver(ctx, job); err != nil {
				slog.Warn("notification delivery failed",
					"job_id", job.ID.String(), "topic", job.Topic, "error", err.Error())
				if err := tx.Notifications().MarkJobFailed(ctx, job.ID, err.Error()); err != nil {
					return err
				}
				continue
			}
			if err := tx.Notifications().MarkJobDone(ctx, job.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		slog.Error("notification drain failed", "error", err.Error())
	}
}

func (n *Notifier) deliver(ctx context.Context, job shared.NotificationJob) error {
	var payload map[string]any
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return err
	}

	contact, _ := payload["contact"].(string)
	if contact == "" {
		// in-app jobs address the organizer rather than a phone number
		contact, _ = payload["organizer_id"].(string)
	}
	params := make(map[string]string, len(payload))
	for k, v := range payload {
		if k == "contact" {
			continue
		}
		params[k] = fmt.Sprint(v)
	}

	return n.sender.Send(ctx, contact, job.Topic, params)
}
