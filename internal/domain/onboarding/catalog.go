package onboarding

import "strings"

type Platform struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	BaseURL string `json:"base_url"`
}

var platforms = []Platform{
	{Value: "instagram", Label: "Instagram", BaseURL: "https://instagram.com/"},
	{Value: "tiktok", Label: "TikTok", BaseURL: "https://www.tiktok.com/@"},
	{Value: "youtube", Label: "YouTube", BaseURL: "https://youtube.com/@"},
	{Value: "twitter", Label: "Twitter/X", BaseURL: "https://twitter.com/"},
	{Value: "facebook", Label: "Facebook", BaseURL: "https://facebook.com/"},
	{Value: "linkedin", Label: "LinkedIn", BaseURL: "https://www.linkedin.com/in/"},
	{Value: "pinterest", Label: "Pinterest", BaseURL: "https://www.pinterest.com/"},
	{Value: "twitch", Label: "Twitch", BaseURL: "https://twitch.tv/"},
	{Value: "other", Label: "Other"},
}

var predefinedSpecialties = []string{
	"Beauty", "Fashion", "Tech", "Fitness", "Gaming",
	"Travel", "Food", "Education", "Finance", "Other",
}

var linkSuggestions = []string{
	"Portfolio", "Website", "Blog", "Press Kit", "Media Kit", "Rate Card",
	"Contact", "About", "Services", "Testimonials", "Case Studies", "Newsletter",
	"Podcast", "Course", "E-book", "Freebie", "Download", "Other",
}

func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

func PredefinedSpecialties() []string {
	return append([]string(nil), predefinedSpecialties...)
}

func LinkSuggestions() []string {
	return append([]string(nil), linkSuggestions...)
}

func IsValidPlatform(v string) bool {
	for _, p := range platforms {
		if p.Value == v {
			return true
		}
	}
	return false
}

// BuildProfileURL derives a profile url from a platform and username.
// Returns "" for "other" and unknown platforms.
func BuildProfileURL(platform, username string) string {
	u := strings.TrimPrefix(strings.TrimSpace(username), "@")
	if u == "" {
		return ""
	}
	for _, p := range platforms {
		if p.Value == platform && p.BaseURL != "" {
			return p.BaseURL + u
		}
	}
	return ""
}

// AutofillURL fills next.URL from platform and username when the url is empty
// or still equals what would have been derived from prev. A url the creator
// typed by hand is kept.
func AutofillURL(prev, next SocialLink) SocialLink {
	if next.Platform == "" || strings.TrimSpace(next.Username) == "" {
		return next
	}
	derived := BuildProfileURL(next.Platform, next.Username)
	if derived == "" {
		return next
	}
	if next.URL == "" || next.URL == BuildProfileURL(prev.Platform, prev.Username) {
		next.URL = derived
	}
	return next
}
