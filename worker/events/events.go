package events

import (
	"context"
	"fmt"
	"time"

	"sblend/core"
	"sblend/pkg/id"
	"sblend/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// Worker delivers pending ledger events to the configured webhook in
// order. An event is marked published only after the endpoint accepts
// it, so delivery is at-least-once.
type Worker struct {
	worker.TickWorker
	eventStore core.IEventStore
	client     *resty.Client
	batch      int
}

// New new events worker
func New(cfg *core.Config, eventStore core.IEventStore) *Worker {
	batch := cfg.Events.Batch
	if batch <= 0 {
		batch = 100
	}

	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    time.Second,
			ErrDelay: 5 * time.Second,
		},
		eventStore: eventStore,
		client: resty.New().
			SetBaseURL(cfg.Events.WebhookURL).
			SetTimeout(10 * time.Second),
		batch: batch,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "events")

	events, err := w.eventStore.ListUnpublished(ctx, w.batch)
	if err != nil {
		log.WithError(err).Errorln("list unpublished events")
		return err
	}

	for _, event := range events {
		if err := w.publish(ctx, event); err != nil {
			log.WithError(err).Errorf("publish event %d (%s)", event.ID, event.Event)
			return err
		}

		if err := w.eventStore.MarkPublished(ctx, event); err != nil {
			log.WithError(err).Errorf("mark event %d published", event.ID)
			return err
		}
	}

	return nil
}

func (w *Worker) publish(ctx context.Context, event *core.Event) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("X-Request-Id", id.GenTraceID()).
		SetBody(map[string]interface{}{
			"trace_id": event.TraceID,
			"event":    event.Event,
			"loan_id":  event.LoanID,
			"payload":  event.Payload,
		}).
		Post("")
	if err != nil {
		return err
	}

	if resp.IsError() {
		return fmt.Errorf("webhook status %s", resp.Status())
	}

	return nil
}
