package service

import (
	"context"

	"github.com/google/uuid"
)

// EmailConnector links a creator's mailbox. It eventually reports success
// (true) or failure (false); an error is treated as failure.
type EmailConnector interface {
	Connect(ctx context.Context, creatorID uuid.UUID) (bool, error)
}
