package onboarding

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/internal/application/service"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

const (
	defaultConnectTimeout = 30 * time.Second
	outcomeWriteTimeout   = 5 * time.Second
)

type GmailUseCase struct {
	store     *StoreUseCase
	connector service.EmailConnector
	publisher service.EventPublisher
	logger    logger.Logger
	timeout   time.Duration
	inflight  sync.WaitGroup
}

func NewGmailUseCase(store *StoreUseCase, connector service.EmailConnector, pub service.EventPublisher, log logger.Logger) *GmailUseCase {
	return &GmailUseCase{
		store:     store,
		connector: connector,
		publisher: pub,
		logger:    log,
		timeout:   defaultConnectTimeout,
	}
}

// Connect moves the draft to "connecting" and resolves the outcome in the
// background. The outcome is written even if the client has moved on to
// another step. A second call while connecting is a no-op, unless the
// attempt has outlived its deadline; then it is marked failed.
func (uc *GmailUseCase) Connect(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	ctx, span := tracer.Start(ctx, "Gmail.Connect")
	defer span.End()

	d, recovered, err := uc.loadRecovered(ctx, creatorID)
	if err != nil {
		return onboarding.Draft{}, err
	}
	if recovered || d.Connection == onboarding.ConnectionConnecting {
		return d, nil
	}
	if !d.Connection.CanTransitionTo(onboarding.ConnectionConnecting) {
		return onboarding.Draft{}, apperror.NewInvalidState(fmt.Sprintf("gmail connection is %s", d.Connection))
	}

	d, err = uc.store.SetConnectionStatus(ctx, creatorID, onboarding.ConnectionConnecting)
	if err != nil {
		span.RecordError(err)
		return onboarding.Draft{}, err
	}

	uc.inflight.Add(1)
	go uc.resolve(context.WithoutCancel(ctx), creatorID)

	return d, nil
}

func (uc *GmailUseCase) resolve(ctx context.Context, creatorID uuid.UUID) {
	defer uc.inflight.Done()

	ctx, span := tracer.Start(ctx, "Gmail.resolve", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	status := onboarding.ConnectionFailed
	connCtx, cancelConn := context.WithTimeout(ctx, uc.timeout)
	ok, err := uc.connector.Connect(connCtx, creatorID)
	cancelConn()
	switch {
	case err != nil:
		uc.logger.Warn("Gmail connection errored", zap.String("creator_id", creatorID.String()), zap.Error(err))
	case ok:
		status = onboarding.ConnectionSuccess
	}

	// The connector's deadline must not leak into the outcome write.
	ctx, cancel := context.WithTimeout(ctx, outcomeWriteTimeout)
	defer cancel()

	if _, err := uc.store.SetConnectionStatus(ctx, creatorID, status); err != nil {
		uc.logger.Error("Failed to store gmail outcome", err, zap.String("creator_id", creatorID.String()))
		return
	}
	uc.logger.Info("Gmail connection resolved",
		zap.String("creator_id", creatorID.String()), zap.String("status", string(status)))

	if uc.publisher != nil {
		err := uc.publisher.PublishOnboardingEvent(ctx, event.OnboardingEventPayload{
			EventType:  event.OnboardingEventGmail,
			CreatorID:  creatorID,
			Connection: string(status),
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			uc.logger.Error("Failed to publish gmail event", err, zap.String("creator_id", creatorID.String()))
		}
	}
}

// Retry resets a failed connection so the creator can try again. A stale
// "connecting" draft counts as failed.
func (uc *GmailUseCase) Retry(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	d, _, err := uc.loadRecovered(ctx, creatorID)
	if err != nil {
		return onboarding.Draft{}, err
	}
	if !d.Connection.CanTransitionTo(onboarding.ConnectionNotStarted) {
		return onboarding.Draft{}, apperror.NewInvalidState(fmt.Sprintf("gmail connection is %s", d.Connection))
	}
	return uc.store.SetConnectionStatus(ctx, creatorID, onboarding.ConnectionNotStarted)
}

// loadRecovered returns the draft, first failing a "connecting" status that
// no attempt can still resolve, e.g. after the outcome write was lost or the
// process restarted mid-attempt.
func (uc *GmailUseCase) loadRecovered(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, bool, error) {
	d, err := uc.store.Get(ctx, creatorID)
	if err != nil {
		return onboarding.Draft{}, false, err
	}
	if d.Connection != onboarding.ConnectionConnecting || !uc.stale(d) {
		return d, false, nil
	}
	uc.logger.Warn("Recovering stale gmail connection",
		zap.String("creator_id", creatorID.String()), zap.Time("updated_at", d.UpdatedAt))
	d, err = uc.store.SetConnectionStatus(ctx, creatorID, onboarding.ConnectionFailed)
	if err != nil {
		return onboarding.Draft{}, false, err
	}
	return d, true, nil
}

func (uc *GmailUseCase) stale(d onboarding.Draft) bool {
	return uc.store.clock().Sub(d.UpdatedAt) > uc.timeout+outcomeWriteTimeout
}

// Wait blocks until every background connection attempt has resolved.
func (uc *GmailUseCase) Wait() {
	uc.inflight.Wait()
}
