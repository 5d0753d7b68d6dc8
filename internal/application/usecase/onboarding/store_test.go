package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
)

func TestStoreDefaults(t *testing.T) {
	f := newFixture(t)

	d, err := f.store.Get(context.Background(), f.creatorID)

	require.NoError(t, err)
	assert.Equal(t, onboarding.ConnectionNotStarted, d.Connection)
	assert.Empty(t, d.Socials)
	assert.Empty(t, d.Links)
	assert.False(t, d.Completed)
}

func TestStoreMutationsPersist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fixed := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	f.store.clock = func() time.Time { return fixed }

	_, err := f.store.MergeProfile(ctx, f.creatorID, onboarding.ProfilePatch{Name: ptr("Jane Doe")})
	require.NoError(t, err)
	_, err = f.store.MergeProfile(ctx, f.creatorID, onboarding.ProfilePatch{Headline: ptr("Beauty creator")})
	require.NoError(t, err)

	d, err := f.store.AddSocial(ctx, f.creatorID, onboarding.SocialLink{Platform: "instagram"})
	require.NoError(t, err)
	require.Len(t, d.Socials, 1)
	assert.NotEmpty(t, d.Socials[0].ID, "a missing id is assigned")

	id := d.Socials[0].ID
	_, err = f.store.UpdateSocial(ctx, f.creatorID, id, onboarding.SocialLinkPatch{Username: ptr("jane")})
	require.NoError(t, err)
	_, err = f.store.UpdateSocial(ctx, f.creatorID, "missing", onboarding.SocialLinkPatch{Username: ptr("x")})
	require.NoError(t, err)

	got, err := f.store.Get(ctx, f.creatorID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Profile.Name)
	assert.Equal(t, "Beauty creator", got.Profile.Headline)
	require.Len(t, got.Socials, 1)
	assert.Equal(t, "jane", got.Socials[0].Username)
	assert.True(t, got.UpdatedAt.Equal(fixed))
}

func TestStoreLinksAndReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.store.AddLink(ctx, f.creatorID, onboarding.CustomLink{ID: "l1", Label: "Shop"})
	require.NoError(t, err)
	assert.Len(t, d.Links, 1)

	d, err = f.store.UpdateLink(ctx, f.creatorID, "l1", onboarding.CustomLinkPatch{URL: ptr("https://shop.example.com")})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com", d.Links[0].URL)

	d, err = f.store.RemoveLink(ctx, f.creatorID, "unknown")
	require.NoError(t, err)
	assert.Len(t, d.Links, 1)

	d, err = f.store.RemoveLink(ctx, f.creatorID, "l1")
	require.NoError(t, err)
	assert.Empty(t, d.Links)

	_, err = f.store.SetConnectionStatus(ctx, f.creatorID, onboarding.ConnectionSuccess)
	require.NoError(t, err)
	_, err = f.store.SetCompleted(ctx, f.creatorID, true)
	require.NoError(t, err)

	d, err = f.store.Reset(ctx, f.creatorID)
	require.NoError(t, err)
	assert.Equal(t, onboarding.ConnectionNotStarted, d.Connection)
	assert.False(t, d.Completed)

	got, err := f.store.Get(ctx, f.creatorID)
	require.NoError(t, err)
	assert.False(t, got.Completed)
	assert.Equal(t, onboarding.ConnectionNotStarted, got.Connection)
}
