package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildProfileURL(t *testing.T) {
	assert.Equal(t, "https://instagram.com/jane", BuildProfileURL("instagram", "@jane"))
	assert.Equal(t, "https://www.tiktok.com/@jane", BuildProfileURL("tiktok", "jane"))
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", BuildProfileURL("linkedin", " jane-doe "))
	assert.Equal(t, "", BuildProfileURL("other", "jane"))
	assert.Equal(t, "", BuildProfileURL("instagram", "@"))
}

func TestAutofillURL(t *testing.T) {
	prev := SocialLink{ID: "1"}
	next := SocialLink{ID: "1", Platform: "twitch", Username: "jane"}
	filled := AutofillURL(prev, next)
	assert.Equal(t, "https://twitch.tv/jane", filled.URL)

	// Username edits keep following while the url is still the derived one.
	renamed := AutofillURL(filled, SocialLink{ID: "1", Platform: "twitch", Username: "jane2", URL: filled.URL})
	assert.Equal(t, "https://twitch.tv/jane2", renamed.URL)

	custom := AutofillURL(filled, SocialLink{ID: "1", Platform: "twitch", Username: "jane3", URL: "https://jane.dev/live"})
	assert.Equal(t, "https://jane.dev/live", custom.URL)

	other := AutofillURL(prev, SocialLink{ID: "1", Platform: "other", Username: "jane"})
	assert.Equal(t, "", other.URL)
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	ps := Platforms()
	ps[0].Value = "changed"
	assert.True(t, IsValidPlatform("instagram"))
	assert.Len(t, Platforms(), 9)
	assert.Contains(t, PredefinedSpecialties(), "Gaming")
	assert.Contains(t, LinkSuggestions(), "Media Kit")
}
