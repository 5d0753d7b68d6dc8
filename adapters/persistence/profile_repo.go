package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/internal/domain/profile"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const profileColumns = "creator_id, name, headline, bio, location, specialties, socials, links, gmail_connected, published_at, updated_at"

func scanProfile(row pgx.Row, l logger.Logger) (*profile.Profile, error) {
	p := &profile.Profile{}
	var socialsBytes, linksBytes []byte

	err := row.Scan(
		&p.CreatorID,
		&p.Name,
		&p.Headline,
		&p.Bio,
		&p.Location,
		&p.Specialties,
		&socialsBytes,
		&linksBytes,
		&p.GmailConnected,
		&p.PublishedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("creator profile", "")
		}
		return nil, apperror.NewInternal("failed to scan creator profile row", err)
	}

	if err := json.Unmarshal(socialsBytes, &p.Socials); err != nil {
		l.Warn("Failed to unmarshal socials", zap.String("creator_id", p.CreatorID.String()), zap.Error(err))
		p.Socials = []profile.SocialAccount{}
	}
	if err := json.Unmarshal(linksBytes, &p.Links); err != nil {
		l.Warn("Failed to unmarshal links", zap.String("creator_id", p.CreatorID.String()), zap.Error(err))
		p.Links = []profile.Link{}
	}
	if p.Specialties == nil {
		p.Specialties = []string{}
	}
	return p, nil
}

func (r *postgresProfileRepo) GetByCreatorID(ctx context.Context, creatorID uuid.UUID) (*profile.Profile, error) {
	sql, args, err := psqlProfile.Select(profileColumns).
		From("creator_profiles").
		Where(sq.Eq{"creator_id": creatorID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build get profile query", err)
	}

	p, err := scanProfile(r.db.QueryRow(ctx, sql, args...), r.logger)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("creator profile", creatorID.String())
	}
	return p, err
}

// Upsert keeps the original published_at when a creator finishes onboarding
// a second time.
func (r *postgresProfileRepo) Upsert(ctx context.Context, p *profile.Profile) error {
	socialsBytes, err := json.Marshal(p.Socials)
	if err != nil {
		return apperror.NewInternal("failed to marshal socials", err)
	}
	linksBytes, err := json.Marshal(p.Links)
	if err != nil {
		return apperror.NewInternal("failed to marshal links", err)
	}
	specialties := p.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	sql, args, err := psqlProfile.Insert("creator_profiles").
		Columns("creator_id", "name", "headline", "bio", "location", "specialties", "socials", "links", "gmail_connected", "published_at", "updated_at").
		Values(p.CreatorID, p.Name, p.Headline, p.Bio, p.Location, specialties, socialsBytes, linksBytes, p.GmailConnected, p.PublishedAt, p.UpdatedAt).
		Suffix(`ON CONFLICT (creator_id) DO UPDATE SET
			name = EXCLUDED.name,
			headline = EXCLUDED.headline,
			bio = EXCLUDED.bio,
			location = EXCLUDED.location,
			specialties = EXCLUDED.specialties,
			socials = EXCLUDED.socials,
			links = EXCLUDED.links,
			gmail_connected = EXCLUDED.gmail_connected,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build upsert profile query", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperror.NewInternal("failed to upsert creator profile", err)
	}
	return nil
}

func (r *postgresProfileRepo) ListPublished(ctx context.Context, limit, offset int) ([]*profile.Profile, error) {
	sql, args, err := psqlProfile.Select(profileColumns).
		From("creator_profiles").
		OrderBy("published_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list profiles query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query creator profiles", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows, r.logger)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating creator profile rows", err)
	}
	return profiles, nil
}
