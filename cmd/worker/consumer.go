package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

var (
	fetchBackoff    = 500 * time.Millisecond
	maxFetchBackoff = 30 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type eventProcessor interface {
	Execute(ctx context.Context, payload event.OnboardingEventPayload) error
}

// consume processes onboarding events until ctx ends or the reader is
// closed. Failed events are left uncommitted so the group redelivers them.
func consume(ctx context.Context, r messageReader, proc eventProcessor, log logger.Logger) error {
	backoff := fetchBackoff
	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				return err
			}
			log.Error("Failed to read message from Kafka", err, zap.Duration("retry_in", backoff))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxFetchBackoff)
			continue
		}
		backoff = fetchBackoff

		msgLogger := log.With(zap.String("key", string(msg.Key)), zap.Int64("offset", msg.Offset))

		var payload event.OnboardingEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			msgLogger.Error("Failed to unmarshal event, skipping", err)
			commitMessage(r, msg, msgLogger)
			continue
		}

		if err := proc.Execute(ctx, payload); err != nil {
			msgLogger.Error("Failed to process onboarding event", err, zap.String("event_type", string(payload.EventType)))
			continue
		}

		commitMessage(r, msg, msgLogger)
	}
}

func commitMessage(r messageReader, msg kafka.Message, log logger.Logger) {
	if err := r.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
