package onboarding

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/beehype-onboarding/adapters/event"
	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

func waitForEvents(t *testing.T, p *recordingPublisher, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-p.notify:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d of %d", i+1, n)
		}
	}
}

func TestView(t *testing.T) {
	f := newFixture(t)

	v := f.wizard.View("/onboarding/gmail")
	assert.Equal(t, onboarding.StepGmail, v.Step)
	assert.Equal(t, 2, v.Index)
	assert.Equal(t, 7, v.Total)
	assert.Equal(t, 43, v.StepperPercent)
	assert.True(t, v.CanGoBack)
	assert.False(t, v.IsLast)

	v = f.wizard.View("/onboarding/unknown")
	assert.Equal(t, onboarding.StepWelcome, v.Step)
	assert.False(t, v.CanGoBack)

	v = f.wizard.View("/onboarding/intro")
	assert.True(t, v.IsLast)
	assert.Equal(t, 100, v.StepperPercent)
}

func TestContinueOnProfileIsGatedByValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tr, err := f.wizard.Continue(ctx, f.creatorID, "/onboarding/profile")
	require.NoError(t, err)
	assert.True(t, tr.Blocked)
	assert.Equal(t, onboarding.StepProfile, tr.To)

	_, err = f.wizard.SubmitProfile(ctx, SubmitProfileInput{
		CreatorID: f.creatorID,
		Name:      "Jane Doe",
		Headline:  "Beauty creator",
		Bio:       "I make videos.",
	})
	require.NoError(t, err)

	tr, err = f.wizard.Continue(ctx, f.creatorID, "/onboarding/profile")
	require.NoError(t, err)
	assert.False(t, tr.Blocked)
	assert.Equal(t, onboarding.StepGmail, tr.To)
	assert.Equal(t, "/onboarding/gmail", tr.Path)
}

func TestSubmitProfileRejectsInvalidForm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.wizard.SubmitProfile(ctx, SubmitProfileInput{
		CreatorID: f.creatorID,
		Name:      "   ",
		Headline:  strings.Repeat("h", 61),
		Bio:       "ok",
	})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Full name is required", vErr.Fields["name"])
	assert.Equal(t, "Headline must be at most 60 characters", vErr.Fields["headline"])

	d, err := f.store.Get(ctx, f.creatorID)
	require.NoError(t, err)
	assert.Empty(t, d.Profile.Name, "rejected form is not stored")
}

func TestSubmitProfileTrimsAndKeepsSpecialties(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.wizard.SubmitSpecialties(ctx, f.creatorID, []string{"Beauty", " Fashion ", "Beauty"})
	require.NoError(t, err)

	d, err := f.wizard.SubmitProfile(ctx, SubmitProfileInput{
		CreatorID: f.creatorID,
		Name:      "  Jane Doe ",
		Headline:  "Beauty creator",
		Bio:       "I make videos.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", d.Profile.Name)
	assert.Equal(t, []string{"Beauty", "Fashion"}, d.Profile.Specialties)
}

func TestSubmitSpecialtiesRequiresOne(t *testing.T) {
	f := newFixture(t)

	_, err := f.wizard.SubmitSpecialties(context.Background(), f.creatorID, []string{" "})

	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please select at least one specialty", vErr.Fields["specialties"])
}

func TestSocialRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	link, d, err := f.wizard.AddSocial(ctx, f.creatorID, SocialLinkInput{})
	require.NoError(t, err)
	require.Len(t, d.Socials, 1)
	assert.NotEmpty(t, link.ID)

	_, err = f.wizard.SaveSocial(ctx, f.creatorID, link.ID, onboarding.SocialLinkPatch{Platform: ptr("instagram")})
	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Add a username or a profile URL.", vErr.Fields["url"])

	d, err = f.wizard.SaveSocial(ctx, f.creatorID, link.ID, onboarding.SocialLinkPatch{
		Platform: ptr("instagram"),
		Username: ptr("@jane"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://instagram.com/jane", d.Socials[0].URL)

	_, err = f.wizard.SaveSocial(ctx, f.creatorID, link.ID, onboarding.SocialLinkPatch{URL: ptr("instagram.com/jane")})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Enter a valid URL (http/https)", vErr.Fields["url"])

	_, err = f.wizard.SaveSocial(ctx, f.creatorID, "nope", onboarding.SocialLinkPatch{})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	d, err = f.wizard.RemoveSocial(ctx, f.creatorID, link.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Socials)
}

func TestCustomLinkRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	link, _, err := f.wizard.AddLink(ctx, f.creatorID, CustomLinkInput{Label: "Shop"})
	require.NoError(t, err)

	_, err = f.wizard.SaveLink(ctx, f.creatorID, link.ID, onboarding.CustomLinkPatch{URL: ptr("not a url")})
	var vErr *apperror.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "url")

	d, err := f.wizard.SaveLink(ctx, f.creatorID, link.ID, onboarding.CustomLinkPatch{URL: ptr(" https://shop.example.com ")})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", d.Links[0].URL)

	d, err = f.wizard.RemoveLink(ctx, f.creatorID, link.ID)
	require.NoError(t, err)
	assert.Empty(t, d.Links)
}

func TestFinishCompletesDraftAndPublishes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tr, err := f.wizard.Continue(ctx, f.creatorID, "/onboarding/intro")
	require.NoError(t, err)
	assert.True(t, tr.Completed)
	assert.Equal(t, "/dashboard", tr.Path)

	waitForEvents(t, f.publisher, 1)
	assert.Equal(t, []event.OnboardingEventType{event.OnboardingEventCompleted}, f.publisher.types())

	d, err := f.store.Get(ctx, f.creatorID)
	require.NoError(t, err)
	assert.True(t, d.Completed)
}

func TestBackAndSkip(t *testing.T) {
	f := newFixture(t)

	tr := f.wizard.Back("/onboarding/welcome")
	assert.False(t, tr.Moved)
	assert.Equal(t, onboarding.StepWelcome, tr.To)

	tr = f.wizard.Back("/onboarding/socials")
	assert.Equal(t, onboarding.StepSpecialties, tr.To)

	_, err := f.wizard.Skip(f.creatorID, "/onboarding/socials", false)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	tr, err = f.wizard.Skip(f.creatorID, "/onboarding/socials", true)
	require.NoError(t, err)
	assert.Equal(t, "/dashboard", tr.Path)

	waitForEvents(t, f.publisher, 1)
	assert.Equal(t, []event.OnboardingEventType{event.OnboardingEventSkipped}, f.publisher.types())
}

func TestSummaryAndReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.wizard.SubmitProfile(ctx, SubmitProfileInput{
		CreatorID: f.creatorID,
		Name:      "Jane Doe",
		Headline:  "Beauty creator",
		Bio:       "I make videos.",
	})
	require.NoError(t, err)
	_, err = f.store.SetConnectionStatus(ctx, f.creatorID, onboarding.ConnectionSuccess)
	require.NoError(t, err)

	sum, err := f.wizard.Summary(ctx, f.creatorID)
	require.NoError(t, err)
	assert.Equal(t, 60, sum.Progress.Percent)
	assert.False(t, sum.Ready)

	d, err := f.wizard.Reset(ctx, f.creatorID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.NewDraft().Connection, d.Connection)
	assert.Empty(t, d.Profile.Name)

	waitForEvents(t, f.publisher, 1)
	assert.Equal(t, []event.OnboardingEventType{event.OnboardingEventReset}, f.publisher.types())
}

type gatedPublisher struct {
	release     chan struct{}
	hasDeadline chan bool
}

func (p *gatedPublisher) PublishOnboardingEvent(ctx context.Context, _ event.OnboardingEventPayload) error {
	_, ok := ctx.Deadline()
	p.hasDeadline <- ok
	<-p.release
	return nil
}

func TestWaitHoldsUntilEventsArePublished(t *testing.T) {
	f := newFixture(t)
	pub := &gatedPublisher{release: make(chan struct{}), hasDeadline: make(chan bool, 1)}
	wizard := NewWizardUseCase(f.store, f.navigator, pub, logger.NewNopLogger())

	_, err := wizard.Skip(f.creatorID, "/onboarding/gmail", true)
	require.NoError(t, err)
	assert.True(t, <-pub.hasDeadline, "publish runs on a bounded context")

	done := make(chan struct{})
	go func() {
		wizard.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Wait returned before the event was published")
	case <-time.After(50 * time.Millisecond):
	}

	close(pub.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after publish finished")
	}
}
