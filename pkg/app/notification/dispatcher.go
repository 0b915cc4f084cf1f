package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/safenest/trustpipe/pkg/domain/notification"
	"github.com/safenest/trustpipe/pkg/infra/metrics"
)

const (
	dispatchBatchSize   = 50
	dispatchConcurrency = 4
)

// Dispatcher drains the notification queue on a fixed interval. Delivery is
// at-least-once: a crash between Send and MarkSent replays the notification
// on the next tick, which guardians tolerate better than silence.
type Dispatcher struct {
	repo     notification.Repository
	mailer   Mailer
	interval time.Duration
	logger   *logrus.Logger
}

func NewDispatcher(logger *logrus.Logger, repo notification.Repository, mailer Mailer, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		mailer:   mailer,
		interval: interval,
		logger:   logger,
	}
}

// Start blocks until ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.logger.WithField("interval", d.interval.String()).Info("notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("notification dispatcher stopped")
			return
		case <-ticker.C:
			d.DispatchBatch(ctx)
		}
	}
}

// DispatchBatch delivers every currently deliverable notification. Failures
// are recorded on the row and retried on a later tick; they never abort the
// rest of the batch.
func (d *Dispatcher) DispatchBatch(ctx context.Context) {
	pending, err := d.repo.ListDeliverable(ctx, dispatchBatchSize)
	if err != nil {
		d.logger.WithError(err).Error("failed to list deliverable notifications")
		return
	}
	if len(pending) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dispatchConcurrency)
	for _, n := range pending {
		n := n
		g.Go(func() error {
			d.deliver(gctx, n)
			return nil
		})
	}
	_ = g.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, n *notification.TutorNotification) {
	log := d.logger.WithFields(logrus.Fields{
		"notification_id": n.ID,
		"event_key":       n.EventKey,
		"type":            n.Type,
	})

	if err := d.mailer.Send(ctx, n); err != nil {
		metrics.NotificationDispatchTotal.WithLabelValues("failed").Inc()
		log.WithError(err).Warn("notification delivery failed")
		if markErr := d.repo.MarkFailed(ctx, n.ID, err.Error()); markErr != nil {
			log.WithError(markErr).Error("failed to record delivery failure")
		}
		return
	}

	if err := d.repo.MarkSent(ctx, n.ID); err != nil {
		log.WithError(err).Error("failed to mark notification sent")
		return
	}
	metrics.NotificationDispatchTotal.WithLabelValues("sent").Inc()
	log.Info("notification delivered")
}
