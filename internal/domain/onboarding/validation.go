package onboarding

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxNameLength     = 80
	MaxHeadlineLength = 60
	MaxBioLength      = 600
)

// FieldErrors maps a json field name to a user facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + fe[k]
	}
	return strings.Join(parts, "; ")
}

var httpURLPattern = regexp.MustCompile(`(?i)^https?://`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("http_or_https", func(fl validator.FieldLevel) bool {
		return httpURLPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return IsValidPlatform(fl.Field().String())
	})
	v.RegisterStructValidationMapRules(map[string]string{
		"Name":     fmt.Sprintf("required,max=%d", MaxNameLength),
		"Headline": fmt.Sprintf("required,max=%d", MaxHeadlineLength),
		"Bio":      fmt.Sprintf("required,max=%d", MaxBioLength),
	}, profileForm{})
	return v
}

// messages is keyed by "<field>.<tag>".
var messages = map[string]string{
	"name.required":     "Full name is required",
	"name.max":          fmt.Sprintf("Full name must be at most %d characters", MaxNameLength),
	"headline.required": "Professional headline is required",
	"headline.max":      fmt.Sprintf("Headline must be at most %d characters", MaxHeadlineLength),
	"bio.required":      "Bio is required",
	"bio.max":           fmt.Sprintf("Bio must be at most %d characters", MaxBioLength),
	"specialties.min":   "Please select at least one specialty",
	"platform.required": "Select a platform",
	"platform.platform": "Select a supported platform",
	"url.http_or_https": "Enter a valid URL (http/https)",
	"label.required":    "Link name is required",
	"url.required":      "URL is required",
	"url.url":           "Enter a valid URL",
}

func toFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if i := strings.IndexByte(field, '['); i >= 0 {
			field = field[:i]
		}
		if _, seen := out[field]; seen {
			continue
		}
		msg, ok := messages[field+"."+fe.Tag()]
		if !ok {
			msg = "Invalid value"
		}
		out[field] = msg
	}
	return out
}

// profileForm rules are registered in newValidator from the Max* limits.
type profileForm struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Bio      string `json:"bio"`
}

// ValidateProfile trims the profile and checks the profile step rules.
// Specialties are normalized but may be empty here.
func ValidateProfile(p CreatorProfile) (CreatorProfile, FieldErrors) {
	p.Name = strings.TrimSpace(p.Name)
	p.Headline = strings.TrimSpace(p.Headline)
	p.Bio = strings.TrimSpace(p.Bio)
	p.Location = strings.TrimSpace(p.Location)
	p.Specialties = NormalizeSpecialties(p.Specialties)

	form := profileForm{Name: p.Name, Headline: p.Headline, Bio: p.Bio}
	if errs := toFieldErrors(validate.Struct(form)); len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

// IsProfileComplete is the summary predicate: name, headline and bio set.
func IsProfileComplete(p CreatorProfile) bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.Headline) != "" &&
		strings.TrimSpace(p.Bio) != ""
}

// NormalizeSpecialties trims entries, drops blanks and duplicates and keeps
// the first-seen order.
func NormalizeSpecialties(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

type specialtiesForm struct {
	Specialties []string `json:"specialties" validate:"min=1"`
}

// ValidateSpecialties enforces the specialties step gate: at least one entry.
func ValidateSpecialties(in []string) ([]string, FieldErrors) {
	out := NormalizeSpecialties(in)
	if errs := toFieldErrors(validate.Struct(specialtiesForm{Specialties: out})); len(errs) > 0 {
		return out, errs
	}
	return out, nil
}

type socialForm struct {
	Platform string `json:"platform" validate:"required,platform"`
	Username string `json:"username"`
	URL      string `json:"url" validate:"omitempty,http_or_https"`
}

func ValidateSocialLink(l SocialLink) (SocialLink, FieldErrors) {
	l.Platform = strings.TrimSpace(l.Platform)
	l.Username = strings.TrimSpace(l.Username)
	l.URL = strings.TrimSpace(l.URL)

	errs := toFieldErrors(validate.Struct(socialForm{Platform: l.Platform, Username: l.Username, URL: l.URL}))
	if l.Username == "" && l.URL == "" {
		if errs == nil {
			errs = FieldErrors{}
		}
		errs["url"] = "Add a username or a profile URL."
	}
	if len(errs) > 0 {
		return l, errs
	}
	return l, nil
}

type customLinkForm struct {
	Label string `json:"label" validate:"required"`
	URL   string `json:"url" validate:"required,url"`
}

func ValidateCustomLink(l CustomLink) (CustomLink, FieldErrors) {
	l.Label = strings.TrimSpace(l.Label)
	l.URL = strings.TrimSpace(l.URL)

	if errs := toFieldErrors(validate.Struct(customLinkForm{Label: l.Label, URL: l.URL})); len(errs) > 0 {
		return l, errs
	}
	return l, nil
}
