package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/smonzon/registration-service/internal/model"
	"github.com/smonzon/registration-service/internal/sqs"
)

const outboxBatchSize = 100

// EventStore is the outbox table access the worker needs.
type EventStore interface {
	ListPending(ctx context.Context, limit int) ([]*model.Event, error)
	UpdateStatus(ctx context.Context, eventID uuid.UUID, status model.EventStatus) error
}

// MessagePublisher publishes user change messages to the notification queue.
type MessagePublisher interface {
	PublishUserMessage(ctx context.Context, msg sqs.UserMessage) error
}

// OutboxWorker polls the events table and publishes pending events to the
// notification queue. Events are written in the registration transaction, so
// a message is only ever published for a committed registration.
type OutboxWorker struct {
	events    EventStore
	publisher MessagePublisher
	interval  time.Duration
	stopChan  chan struct{}
}

// NewOutboxWorker creates a new OutboxWorker.
func NewOutboxWorker(events EventStore, publisher MessagePublisher, interval time.Duration) *OutboxWorker {
	return &OutboxWorker{
		events:    events,
		publisher: publisher,
		interval:  interval,
		stopChan:  make(chan struct{}),
	}
}

// Start begins processing events from the outbox until the context is
// cancelled or Stop is called.
func (w *OutboxWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Outbox worker started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("Outbox worker stopped by context")
			return
		case <-w.stopChan:
			slog.Info("Outbox worker stopped")
			return
		case <-ticker.C:
			w.processEvents(ctx)
		}
	}
}

// Stop stops the outbox worker.
func (w *OutboxWorker) Stop() {
	close(w.stopChan)
}

func (w *OutboxWorker) processEvents(ctx context.Context) {
	events, err := w.events.ListPending(ctx, outboxBatchSize)
	if err != nil {
		slog.Error("Failed to retrieve pending events", slog.Any("err", err))
		return
	}

	if len(events) == 0 {
		return
	}

	slog.Info("Processing pending events", slog.Int("count", len(events)))

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			slog.Error("Failed to process event",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType),
				slog.Any("err", err))

			if updateErr := w.events.UpdateStatus(ctx, event.ID, model.EventStatusFailed); updateErr != nil {
				slog.Error("Failed to update event status to failed",
					slog.String("event_id", event.ID.String()),
					slog.Any("err", updateErr))
			}
			continue
		}

		if updateErr := w.events.UpdateStatus(ctx, event.ID, model.EventStatusProcessed); updateErr != nil {
			slog.Error("Failed to update event status to processed",
				slog.String("event_id", event.ID.String()),
				slog.Any("err", updateErr))
		} else {
			slog.Info("Event processed successfully",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType))
		}
	}
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *model.Event) error {
	var userMsg sqs.UserMessage
	if err := json.Unmarshal(event.EventData, &userMsg); err != nil {
		return err
	}

	return w.publisher.PublishUserMessage(ctx, userMsg)
}
