package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/internal/domain/profile"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

// ProcessOnboardingEventUseCase runs in the worker. A completed onboarding
// publishes the creator's draft as their public profile.
type ProcessOnboardingEventUseCase struct {
	drafts      onboarding.DraftStore
	profileRepo profile.Repository
	logger      logger.Logger
	clock       func() time.Time
}

func NewProcessOnboardingEventUseCase(drafts onboarding.DraftStore, repo profile.Repository, log logger.Logger) *ProcessOnboardingEventUseCase {
	return &ProcessOnboardingEventUseCase{
		drafts:      drafts,
		profileRepo: repo,
		logger:      log,
		clock:       time.Now,
	}
}

func (uc *ProcessOnboardingEventUseCase) Execute(ctx context.Context, payload event.OnboardingEventPayload) error {
	log := uc.logger.With(
		zap.String("event_type", string(payload.EventType)),
		zap.String("creator_id", payload.CreatorID.String()),
	)

	if payload.EventType != event.OnboardingEventCompleted {
		log.Debug("Onboarding event needs no processing, skip.")
		return nil
	}

	d, err := uc.drafts.Load(ctx, payload.CreatorID)
	if err != nil {
		return fmt.Errorf("load onboarding draft failed: %w", err)
	}
	if !d.Completed {
		// Reset after completion, before the worker caught up.
		log.Info("Draft is no longer completed, skip.")
		return nil
	}

	p := BuildProfile(d)
	p.CreatorID = payload.CreatorID
	now := uc.clock().UTC()
	p.PublishedAt = now
	p.UpdatedAt = now

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert creator profile failed: %w", err)
	}
	log.Info("Published creator profile")
	return nil
}

// BuildProfile turns a finished draft into the public profile. Empty social
// rows and links without a URL are left out.
func BuildProfile(d onboarding.Draft) *profile.Profile {
	p := &profile.Profile{
		Name:           strings.TrimSpace(d.Profile.Name),
		Headline:       strings.TrimSpace(d.Profile.Headline),
		Bio:            strings.TrimSpace(d.Profile.Bio),
		Location:       strings.TrimSpace(d.Profile.Location),
		Specialties:    onboarding.NormalizeSpecialties(d.Profile.Specialties),
		Socials:        make([]profile.SocialAccount, 0, len(d.Socials)),
		Links:          make([]profile.Link, 0, len(d.Links)),
		GmailConnected: d.Connection == onboarding.ConnectionSuccess,
	}

	for _, s := range d.Socials {
		s = onboarding.AutofillURL(onboarding.SocialLink{}, s)
		if strings.TrimSpace(s.Username) == "" && strings.TrimSpace(s.URL) == "" {
			continue
		}
		p.Socials = append(p.Socials, profile.SocialAccount{
			Platform: s.Platform,
			Username: strings.TrimSpace(s.Username),
			URL:      strings.TrimSpace(s.URL),
			Verified: s.Verified,
		})
	}
	for _, l := range d.Links {
		if strings.TrimSpace(l.URL) == "" {
			continue
		}
		p.Links = append(p.Links, profile.Link{Label: strings.TrimSpace(l.Label), URL: strings.TrimSpace(l.URL)})
	}
	return p
}
