package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SocialAccount struct {
	Platform string `json:"platform"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
	Verified bool   `json:"verified"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Profile is the public creator profile produced when onboarding finishes.
type Profile struct {
	CreatorID      uuid.UUID       `json:"creator_id"`
	Name           string          `json:"name"`
	Headline       string          `json:"headline"`
	Bio            string          `json:"bio"`
	Location       string          `json:"location,omitempty"`
	Specialties    []string        `json:"specialties"`
	Socials        []SocialAccount `json:"socials"`
	Links          []Link          `json:"links"`
	GmailConnected bool            `json:"gmail_connected"`
	PublishedAt    time.Time       `json:"published_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type Repository interface {
	GetByCreatorID(ctx context.Context, creatorID uuid.UUID) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	ListPublished(ctx context.Context, limit, offset int) ([]*Profile, error)
}
