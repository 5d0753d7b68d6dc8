package http

import (
	"time"

	"github.com/khoahotran/beehype-onboarding/internal/application/usecase/onboarding"
	domain "github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/internal/domain/profile"
)

// Draft DTOs
type CreatorProfileDTO struct {
	Name        string   `json:"name"`
	Headline    string   `json:"headline"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	Specialties []string `json:"specialties"`
}

type SocialLinkDTO struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
}

type CustomLinkDTO struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type DraftDTO struct {
	Version    int               `json:"version"`
	Connection string            `json:"connection"`
	Profile    CreatorProfileDTO `json:"profile"`
	Socials    []SocialLinkDTO   `json:"socials"`
	Links      []CustomLinkDTO   `json:"links"`
	Completed  bool              `json:"completed"`
	UpdatedAt  *time.Time        `json:"updated_at,omitempty"`
}

func ToSocialLinkDTO(s domain.SocialLink) SocialLinkDTO {
	return SocialLinkDTO{ID: s.ID, Platform: s.Platform, Username: s.Username, URL: s.URL, Verified: s.Verified}
}

func ToCustomLinkDTO(l domain.CustomLink) CustomLinkDTO {
	return CustomLinkDTO{ID: l.ID, Label: l.Label, URL: l.URL}
}

func ToDraftDTO(d domain.Draft) DraftDTO {
	dto := DraftDTO{
		Version:    d.Version,
		Connection: string(d.Connection),
		Profile: CreatorProfileDTO{
			Name:        d.Profile.Name,
			Headline:    d.Profile.Headline,
			Bio:         d.Profile.Bio,
			Location:    d.Profile.Location,
			Specialties: append([]string{}, d.Profile.Specialties...),
		},
		Socials:   make([]SocialLinkDTO, len(d.Socials)),
		Links:     make([]CustomLinkDTO, len(d.Links)),
		Completed: d.Completed,
	}
	for i, s := range d.Socials {
		dto.Socials[i] = ToSocialLinkDTO(s)
	}
	for i, l := range d.Links {
		dto.Links[i] = ToCustomLinkDTO(l)
	}
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		dto.UpdatedAt = &t
	}
	return dto
}

// Progress DTOs
type ChecklistItemDTO struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Step      string `json:"step"`
	Weight    int    `json:"weight"`
	Completed bool   `json:"completed"`
}

type ProgressDTO struct {
	Percent int                `json:"percent"`
	Items   []ChecklistItemDTO `json:"items"`
}

func ToProgressDTO(p domain.Progress) ProgressDTO {
	dto := ProgressDTO{Percent: p.Percent, Items: make([]ChecklistItemDTO, len(p.Items))}
	for i, it := range p.Items {
		dto.Items[i] = ChecklistItemDTO{
			ID:        it.ID,
			Label:     it.Label,
			Step:      string(it.Step),
			Weight:    it.Weight,
			Completed: it.Completed,
		}
	}
	return dto
}

type SummaryDTO struct {
	Draft    DraftDTO    `json:"draft"`
	Progress ProgressDTO `json:"progress"`
	Ready    bool        `json:"ready"`
}

func ToSummaryDTO(s *onboarding.SummaryOutput) SummaryDTO {
	return SummaryDTO{
		Draft:    ToDraftDTO(s.Draft),
		Progress: ToProgressDTO(s.Progress),
		Ready:    s.Ready,
	}
}

// Navigation DTOs
type StepViewDTO struct {
	Step           string `json:"step"`
	Index          int    `json:"index"`
	Total          int    `json:"total"`
	StepperPercent int    `json:"stepper_percent"`
	CanGoBack      bool   `json:"can_go_back"`
	IsLast         bool   `json:"is_last"`
	Path           string `json:"path"`
}

func ToStepViewDTO(v onboarding.StepView) StepViewDTO {
	return StepViewDTO{
		Step:           string(v.Step),
		Index:          v.Index,
		Total:          v.Total,
		StepperPercent: v.StepperPercent,
		CanGoBack:      v.CanGoBack,
		IsLast:         v.IsLast,
		Path:           v.Path,
	}
}

type TransitionDTO struct {
	Action    string `json:"action"`
	From      string `json:"from"`
	To        string `json:"to"`
	Redirect  string `json:"redirect"`
	Moved     bool   `json:"moved"`
	Blocked   bool   `json:"blocked"`
	Completed bool   `json:"completed"`
}

func ToTransitionDTO(t domain.Transition) TransitionDTO {
	return TransitionDTO{
		Action:    string(t.Action),
		From:      string(t.From),
		To:        string(t.To),
		Redirect:  t.Path,
		Moved:     t.Moved,
		Blocked:   t.Blocked,
		Completed: t.Completed,
	}
}

// Requests
type ProfileRequest struct {
	Name        string    `json:"name"`
	Headline    string    `json:"headline"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Specialties *[]string `json:"specialties"`
}

type ContinueRequest struct {
	Profile *ProfileRequest `json:"profile"`
}

type SkipRequest struct {
	From    string `json:"from"`
	Confirm bool   `json:"confirm"`
}

type SpecialtiesRequest struct {
	Specialties []string `json:"specialties"`
}

type SocialLinkRequest struct {
	Platform string `json:"platform"`
	Username string `json:"username"`
	URL      string `json:"url"`
}

type SocialLinkPatchRequest struct {
	Platform *string `json:"platform"`
	Username *string `json:"username"`
	URL      *string `json:"url"`
}

func (r SocialLinkPatchRequest) ToPatch() domain.SocialLinkPatch {
	return domain.SocialLinkPatch{Platform: r.Platform, Username: r.Username, URL: r.URL}
}

type CustomLinkRequest struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type CustomLinkPatchRequest struct {
	Label *string `json:"label"`
	URL   *string `json:"url"`
}

func (r CustomLinkPatchRequest) ToPatch() domain.CustomLinkPatch {
	return domain.CustomLinkPatch{Label: r.Label, URL: r.URL}
}

// Catalog DTOs
type PlatformDTO struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	BaseURL string `json:"base_url,omitempty"`
}

type CatalogDTO struct {
	Steps           []string      `json:"steps"`
	Platforms       []PlatformDTO `json:"platforms"`
	Specialties     []string      `json:"specialties"`
	LinkSuggestions []string      `json:"link_suggestions"`
}

func NewCatalogDTO() CatalogDTO {
	dto := CatalogDTO{
		Specialties:     domain.PredefinedSpecialties(),
		LinkSuggestions: domain.LinkSuggestions(),
	}
	for _, s := range domain.Steps() {
		dto.Steps = append(dto.Steps, string(s))
	}
	for _, p := range domain.Platforms() {
		dto.Platforms = append(dto.Platforms, PlatformDTO{Value: p.Value, Label: p.Label, BaseURL: p.BaseURL})
	}
	return dto
}

// Published profile DTOs
type PublishedProfileDTO struct {
	CreatorID      string             `json:"creator_id"`
	Name           string             `json:"name"`
	Headline       string             `json:"headline"`
	Bio            string             `json:"bio"`
	Location       string             `json:"location,omitempty"`
	Specialties    []string           `json:"specialties"`
	Socials        []PublishedLinkDTO `json:"socials"`
	Links          []PublishedLinkDTO `json:"links"`
	GmailConnected bool               `json:"gmail_connected"`
	PublishedAt    time.Time          `json:"published_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type PublishedLinkDTO struct {
	Platform string `json:"platform,omitempty"`
	Label    string `json:"label,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url"`
	Verified bool   `json:"verified,omitempty"`
}

func ToPublishedProfileDTO(p *profile.Profile) PublishedProfileDTO {
	dto := PublishedProfileDTO{
		CreatorID:      p.CreatorID.String(),
		Name:           p.Name,
		Headline:       p.Headline,
		Bio:            p.Bio,
		Location:       p.Location,
		Specialties:    p.Specialties,
		Socials:        make([]PublishedLinkDTO, len(p.Socials)),
		Links:          make([]PublishedLinkDTO, len(p.Links)),
		GmailConnected: p.GmailConnected,
		PublishedAt:    p.PublishedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	for i, s := range p.Socials {
		dto.Socials[i] = PublishedLinkDTO{Platform: s.Platform, Username: s.Username, URL: s.URL, Verified: s.Verified}
	}
	for i, l := range p.Links {
		dto.Links[i] = PublishedLinkDTO{Label: l.Label, URL: l.URL}
	}
	return dto
}
