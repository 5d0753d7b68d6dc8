package onboarding

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/adapters/persistence"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.OnboardingEventPayload
	notify chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{notify: make(chan struct{}, 16)}
}

func (p *recordingPublisher) PublishOnboardingEvent(_ context.Context, e event.OnboardingEventPayload) error {
	p.mu.Lock()
	p.events = append(p.events, e)
	p.mu.Unlock()
	p.notify <- struct{}{}
	return nil
}

func (p *recordingPublisher) types() []event.OnboardingEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.OnboardingEventType, len(p.events))
	for i, e := range p.events {
		out[i] = e.EventType
	}
	return out
}

type stubConnector struct {
	ok      bool
	err     error
	release chan struct{}
}

func (c *stubConnector) Connect(ctx context.Context, _ uuid.UUID) (bool, error) {
	if c.release != nil {
		select {
		case <-c.release:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}
	return c.ok, c.err
}

type fixture struct {
	store     *StoreUseCase
	navigator *onboarding.Navigator
	wizard    *WizardUseCase
	publisher *recordingPublisher
	creatorID uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewNopLogger()
	store := NewStoreUseCase(persistence.NewMemoryDraftStore("beehype-onboarding-storage", log), log)
	nav := onboarding.NewNavigator(onboarding.NavigatorConfig{})
	pub := newRecordingPublisher()
	wizard := NewWizardUseCase(store, nav, pub, log)
	nav.Register(onboarding.StepProfile, wizard.ProfileController())
	return &fixture{store: store, navigator: nav, wizard: wizard, publisher: pub, creatorID: uuid.New()}
}

func ptr[T any](v T) *T { return &v }
