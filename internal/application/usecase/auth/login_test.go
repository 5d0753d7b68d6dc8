package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/beehype-onboarding/internal/domain/creator"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/auth"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type fakeCreatorRepo struct {
	byEmail map[string]*creator.Creator
}

func (r *fakeCreatorRepo) FindByEmail(_ context.Context, email string) (*creator.Creator, error) {
	if c, ok := r.byEmail[email]; ok {
		return c, nil
	}
	return nil, apperror.NewNotFound("creator", email)
}

func (r *fakeCreatorRepo) FindByID(_ context.Context, id uuid.UUID) (*creator.Creator, error) {
	for _, c := range r.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperror.NewNotFound("creator", id.String())
}

func (r *fakeCreatorRepo) Save(_ context.Context, c *creator.Creator) error {
	r.byEmail[c.Email] = c
	return nil
}

func newLoginFixture(t *testing.T) (*LoginUseCase, *auth.JWTService, *creator.Creator) {
	t.Helper()
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)

	c := &creator.Creator{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hash}
	repo := &fakeCreatorRepo{byEmail: map[string]*creator.Creator{c.Email: c}}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewLoginUseCase(repo, jwtSvc, logger.NewNopLogger()), jwtSvc, c
}

func TestLogin(t *testing.T) {
	uc, jwtSvc, c := newLoginFixture(t)

	out, err := uc.Execute(context.Background(), LoginInput{Email: "  Jane@Example.com ", Password: "s3cret-pass"})

	require.NoError(t, err)
	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, c.ID, claims.CreatorID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	uc, _, _ := newLoginFixture(t)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = uc.Execute(context.Background(), LoginInput{Email: "ghost@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}
