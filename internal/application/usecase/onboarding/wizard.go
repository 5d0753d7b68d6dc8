package onboarding

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/internal/application/service"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

// WizardUseCase drives the stepper shell: step views, back/continue/skip,
// the per-step form submits and the summary.
type WizardUseCase struct {
	store     *StoreUseCase
	navigator *onboarding.Navigator
	publisher service.EventPublisher
	rules     []onboarding.CompletionRule
	logger    logger.Logger
	inflight  sync.WaitGroup
}

const publishTimeout = 10 * time.Second

func NewWizardUseCase(store *StoreUseCase, nav *onboarding.Navigator, pub service.EventPublisher, log logger.Logger) *WizardUseCase {
	return &WizardUseCase{
		store:     store,
		navigator: nav,
		publisher: pub,
		rules:     onboarding.DefaultCompletionRules(),
		logger:    log,
	}
}

type StepView struct {
	Step           onboarding.Step
	Index          int
	Total          int
	StepperPercent int
	CanGoBack      bool
	IsLast         bool
	Path           string
}

func (uc *WizardUseCase) View(path string) StepView {
	step, idx := onboarding.ResolveStep(path)
	total := len(onboarding.Steps())
	return StepView{
		Step:           step,
		Index:          idx,
		Total:          total,
		StepperPercent: onboarding.StepperPercent(idx, total),
		CanGoBack:      idx > 0,
		IsLast:         idx == total-1,
		Path:           uc.navigator.PathFor(step),
	}
}

func (uc *WizardUseCase) Back(path string) onboarding.Transition {
	return uc.navigator.Back(path)
}

// Continue advances past the step at path. Leaving the last step marks the
// draft completed and announces it.
func (uc *WizardUseCase) Continue(ctx context.Context, creatorID uuid.UUID, path string) (onboarding.Transition, error) {
	ctx, span := tracer.Start(ctx, "Wizard.Continue")
	defer span.End()

	t := uc.navigator.Continue(ctx, creatorID, path)
	if t.Blocked {
		uc.logger.Debug("Continue blocked by step controller",
			zap.String("creator_id", creatorID.String()), zap.String("step", string(t.From)))
		return t, nil
	}
	if !t.Completed {
		return t, nil
	}

	if _, err := uc.store.SetCompleted(ctx, creatorID, true); err != nil {
		span.RecordError(err)
		return onboarding.Transition{}, err
	}
	uc.publish(creatorID, event.OnboardingEventCompleted, "")
	return t, nil
}

// Skip requires an explicit confirmation from the client.
func (uc *WizardUseCase) Skip(creatorID uuid.UUID, path string, confirmed bool) (onboarding.Transition, error) {
	if !confirmed {
		return onboarding.Transition{}, apperror.NewInvalidInput("skipping onboarding must be confirmed", nil)
	}
	t := uc.navigator.Skip(path)
	uc.publish(creatorID, event.OnboardingEventSkipped, "")
	return t, nil
}

func (uc *WizardUseCase) Reset(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	d, err := uc.store.Reset(ctx, creatorID)
	if err != nil {
		return onboarding.Draft{}, err
	}
	uc.publish(creatorID, event.OnboardingEventReset, "")
	return d, nil
}

type SummaryOutput struct {
	Draft    onboarding.Draft
	Progress onboarding.Progress
	Ready    bool
}

func (uc *WizardUseCase) Summary(ctx context.Context, creatorID uuid.UUID) (*SummaryOutput, error) {
	d, err := uc.store.Get(ctx, creatorID)
	if err != nil {
		return nil, err
	}
	return &SummaryOutput{
		Draft:    d,
		Progress: onboarding.ComputeProgress(d, uc.rules),
		Ready:    d.Completed,
	}, nil
}

func (uc *WizardUseCase) publish(creatorID uuid.UUID, eventType event.OnboardingEventType, connection string) {
	if uc.publisher == nil {
		return
	}
	payload := event.OnboardingEventPayload{
		EventType:  eventType,
		CreatorID:  creatorID,
		Connection: connection,
		OccurredAt: time.Now().UTC(),
	}
	uc.inflight.Add(1)
	go func() {
		defer uc.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := uc.publisher.PublishOnboardingEvent(ctx, payload); err != nil {
			uc.logger.Error("Failed to publish onboarding event", err,
				zap.String("event_type", string(eventType)), zap.String("creator_id", creatorID.String()))
		}
	}()
}

// Wait blocks until every pending event publish has finished.
func (uc *WizardUseCase) Wait() {
	uc.inflight.Wait()
}
