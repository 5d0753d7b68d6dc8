package creator

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Creator struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Creator, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Creator, error)
	Save(ctx context.Context, c *Creator) error
}
