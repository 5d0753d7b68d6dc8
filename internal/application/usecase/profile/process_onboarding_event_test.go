package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/adapters/persistence"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/internal/domain/profile"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*profile.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*profile.Profile)}
}

func (r *fakeProfileRepo) GetByCreatorID(_ context.Context, id uuid.UUID) (*profile.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("creator profile", id.String())
}

func (r *fakeProfileRepo) Upsert(_ context.Context, p *profile.Profile) error {
	r.profiles[p.CreatorID] = p
	return nil
}

func (r *fakeProfileRepo) ListPublished(_ context.Context, limit, offset int) ([]*profile.Profile, error) {
	out := make([]*profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func finishedDraft() onboarding.Draft {
	name, headline, bio := " Jane Doe ", "Beauty creator", "I make videos."
	specialties := []string{"Beauty", " Beauty", "Fashion"}
	return onboarding.NewDraft().
		WithConnection(onboarding.ConnectionSuccess).
		MergeProfile(onboarding.ProfilePatch{Name: &name, Headline: &headline, Bio: &bio, Specialties: &specialties}).
		AddSocial(onboarding.SocialLink{ID: "s1", Platform: "instagram", Username: "@jane"}).
		AddSocial(onboarding.SocialLink{ID: "s2", Platform: "tiktok"}).
		AddLink(onboarding.CustomLink{ID: "l1", Label: "Shop", URL: "https://shop.example.com"}).
		AddLink(onboarding.CustomLink{ID: "l2", Label: "Empty"}).
		WithCompleted(true)
}

func TestBuildProfile(t *testing.T) {
	p := BuildProfile(finishedDraft())

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, []string{"Beauty", "Fashion"}, p.Specialties)
	assert.True(t, p.GmailConnected)
	require.Len(t, p.Socials, 1)
	assert.Equal(t, "https://instagram.com/jane", p.Socials[0].URL)
	require.Len(t, p.Links, 1)
	assert.Equal(t, "Shop", p.Links[0].Label)
}

func TestProcessOnboardingEvent(t *testing.T) {
	ctx := context.Background()
	drafts := persistence.NewMemoryDraftStore("beehype-onboarding-storage", logger.NewNopLogger())
	repo := newFakeProfileRepo()
	uc := NewProcessOnboardingEventUseCase(drafts, repo, logger.NewNopLogger())
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.clock = func() time.Time { return fixed }

	t.Run("completed draft is published", func(t *testing.T) {
		creatorID := uuid.New()
		require.NoError(t, drafts.Save(ctx, creatorID, finishedDraft()))

		err := uc.Execute(ctx, event.OnboardingEventPayload{EventType: event.OnboardingEventCompleted, CreatorID: creatorID})

		require.NoError(t, err)
		p, err := repo.GetByCreatorID(ctx, creatorID)
		require.NoError(t, err)
		assert.Equal(t, creatorID, p.CreatorID)
		assert.Equal(t, fixed, p.PublishedAt)
	})

	t.Run("draft reset before processing is skipped", func(t *testing.T) {
		creatorID := uuid.New()
		require.NoError(t, drafts.Save(ctx, creatorID, onboarding.NewDraft()))

		err := uc.Execute(ctx, event.OnboardingEventPayload{EventType: event.OnboardingEventCompleted, CreatorID: creatorID})

		require.NoError(t, err)
		_, err = repo.GetByCreatorID(ctx, creatorID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("other events are ignored", func(t *testing.T) {
		creatorID := uuid.New()
		require.NoError(t, drafts.Save(ctx, creatorID, finishedDraft()))

		err := uc.Execute(ctx, event.OnboardingEventPayload{EventType: event.OnboardingEventGmail, CreatorID: creatorID, Connection: "success"})

		require.NoError(t, err)
		assert.Empty(t, repo.profiles[creatorID])
	})
}

func TestListProfilesClampsPaging(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.profiles[uuid.New()] = &profile.Profile{Name: "Jane"}
	uc := NewProfileUseCase(repo)

	out, err := uc.ExecuteListProfiles(context.Background(), ListProfilesInput{Limit: 0, Offset: -3})

	require.NoError(t, err)
	assert.Len(t, out.Profiles, 1)
}
