package onboarding

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SchemaVersion is written with every persisted draft. Older shapes are
// upgraded by DecodeDraft.
const SchemaVersion = 2

var ErrMalformedDraft = errors.New("malformed onboarding draft")

type CreatorProfile struct {
	Name        string   `json:"name"`
	Headline    string   `json:"headline"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	Specialties []string `json:"specialties"`
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	Name        *string
	Headline    *string
	Bio         *string
	Location    *string
	Specialties *[]string
}

type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
}

type SocialLinkPatch struct {
	Platform *string
	Username *string
	URL      *string
	Verified *bool
}

type CustomLink struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	URL   string `json:"url"`
}

type CustomLinkPatch struct {
	Label *string
	URL   *string
}

// Draft is the in-progress onboarding state of one creator.
//
// All mutators return a new Draft and never modify the receiver's slices, so
// a Draft handed out to a caller stays stable.
type Draft struct {
	Version    int              `json:"version"`
	Connection ConnectionStatus `json:"connection"`
	Profile    CreatorProfile   `json:"profile"`
	Socials    []SocialLink     `json:"socials"`
	Links      []CustomLink     `json:"links"`
	Completed  bool             `json:"completed"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewDraft() Draft {
	return Draft{
		Version:    SchemaVersion,
		Connection: ConnectionNotStarted,
		Profile: CreatorProfile{
			Specialties: []string{},
		},
		Socials: []SocialLink{},
		Links:   []CustomLink{},
	}
}

// Clone returns a deep copy.
func (d Draft) Clone() Draft {
	out := d
	out.Profile.Specialties = cloneOrEmpty(d.Profile.Specialties)
	out.Socials = cloneOrEmpty(d.Socials)
	out.Links = cloneOrEmpty(d.Links)
	return out
}

func cloneOrEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

func (d Draft) WithConnection(status ConnectionStatus) Draft {
	out := d.Clone()
	out.Connection = status
	return out
}

func (d Draft) WithCompleted(completed bool) Draft {
	out := d.Clone()
	out.Completed = completed
	return out
}

func (d Draft) MergeProfile(p ProfilePatch) Draft {
	out := d.Clone()
	if p.Name != nil {
		out.Profile.Name = *p.Name
	}
	if p.Headline != nil {
		out.Profile.Headline = *p.Headline
	}
	if p.Bio != nil {
		out.Profile.Bio = *p.Bio
	}
	if p.Location != nil {
		out.Profile.Location = *p.Location
	}
	if p.Specialties != nil {
		out.Profile.Specialties = cloneOrEmpty(*p.Specialties)
	}
	return out
}

func (d Draft) AddSocial(link SocialLink) Draft {
	out := d.Clone()
	out.Socials = append(out.Socials, link)
	return out
}

func (d Draft) FindSocial(id string) (SocialLink, bool) {
	for _, s := range d.Socials {
		if s.ID == id {
			return s, true
		}
	}
	return SocialLink{}, false
}

// UpdateSocial merges the patch into the link with the given id. Unknown ids
// leave the list unchanged.
func (d Draft) UpdateSocial(id string, p SocialLinkPatch) Draft {
	out := d.Clone()
	for i := range out.Socials {
		if out.Socials[i].ID == id {
			out.Socials[i] = p.Apply(out.Socials[i])
		}
	}
	return out
}

func (p SocialLinkPatch) Apply(s SocialLink) SocialLink {
	if p.Platform != nil {
		s.Platform = *p.Platform
	}
	if p.Username != nil {
		s.Username = *p.Username
	}
	if p.URL != nil {
		s.URL = *p.URL
	}
	if p.Verified != nil {
		s.Verified = *p.Verified
	}
	return s
}

func (d Draft) RemoveSocial(id string) Draft {
	out := d.Clone()
	out.Socials = slices.DeleteFunc(out.Socials, func(s SocialLink) bool { return s.ID == id })
	return out
}

func (d Draft) AddLink(link CustomLink) Draft {
	out := d.Clone()
	out.Links = append(out.Links, link)
	return out
}

func (d Draft) FindLink(id string) (CustomLink, bool) {
	for _, l := range d.Links {
		if l.ID == id {
			return l, true
		}
	}
	return CustomLink{}, false
}

func (d Draft) UpdateLink(id string, p CustomLinkPatch) Draft {
	out := d.Clone()
	for i := range out.Links {
		if out.Links[i].ID == id {
			out.Links[i] = p.Apply(out.Links[i])
		}
	}
	return out
}

func (p CustomLinkPatch) Apply(l CustomLink) CustomLink {
	if p.Label != nil {
		l.Label = *p.Label
	}
	if p.URL != nil {
		l.URL = *p.URL
	}
	return l
}

func (d Draft) RemoveLink(id string) Draft {
	out := d.Clone()
	out.Links = slices.DeleteFunc(out.Links, func(l CustomLink) bool { return l.ID == id })
	return out
}

// DraftStore persists one draft per creator. Load returns NewDraft when
// nothing (or nothing readable) is stored.
type DraftStore interface {
	Load(ctx context.Context, creatorID uuid.UUID) (Draft, error)
	Save(ctx context.Context, creatorID uuid.UUID, d Draft) error
	Delete(ctx context.Context, creatorID uuid.UUID) error
}
