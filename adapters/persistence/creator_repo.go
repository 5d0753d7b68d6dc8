package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/beehype-onboarding/internal/domain/creator"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type postgresCreatorRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCreatorRepo(db *pgxpool.Pool, logger logger.Logger) creator.Repository {
	return &postgresCreatorRepo{db: db, logger: logger}
}

func scanCreator(row pgx.Row, identifier string) (*creator.Creator, error) {
	c := &creator.Creator{}
	err := row.Scan(&c.ID, &c.Email, &c.DisplayName, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("creator", identifier)
		}
		return nil, apperror.NewInternal("failed to query creator", err)
	}
	return c, nil
}

func (r *postgresCreatorRepo) FindByEmail(ctx context.Context, email string) (*creator.Creator, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at
		FROM creators
		WHERE email = $1
	`
	return scanCreator(r.db.QueryRow(ctx, query, email), email)
}

func (r *postgresCreatorRepo) FindByID(ctx context.Context, id uuid.UUID) (*creator.Creator, error) {
	query := `
		SELECT id, email, display_name, password_hash, created_at
		FROM creators
		WHERE id = $1
	`
	return scanCreator(r.db.QueryRow(ctx, query, id), id.String())
}

func (r *postgresCreatorRepo) Save(ctx context.Context, c *creator.Creator) error {
	query := `
		INSERT INTO creators (id, email, display_name, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, c.ID, c.Email, c.DisplayName, c.PasswordHash, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewInvalidState("creator with email " + c.Email + " already exists")
		}
		return apperror.NewInternal("failed to save creator", err)
	}
	return nil
}
