package service

import (
	"context"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
)

type EventPublisher interface {
	PublishOnboardingEvent(ctx context.Context, payload event.OnboardingEventPayload) error
}
