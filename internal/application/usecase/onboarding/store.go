package onboarding

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

var tracer = otel.Tracer("onboarding_usecase")

// StoreUseCase is the draft container. Every mutation loads the creator's
// draft, applies a pure change and writes the result back. Nothing here
// validates; callers do.
type StoreUseCase struct {
	drafts onboarding.DraftStore
	logger logger.Logger
	clock  func() time.Time
}

func NewStoreUseCase(drafts onboarding.DraftStore, log logger.Logger) *StoreUseCase {
	return &StoreUseCase{
		drafts: drafts,
		logger: log,
		clock:  time.Now,
	}
}

func (uc *StoreUseCase) Get(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	ctx, span := tracer.Start(ctx, "Store.Get")
	defer span.End()

	d, err := uc.drafts.Load(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		return onboarding.Draft{}, err
	}
	return d, nil
}

func (uc *StoreUseCase) mutate(ctx context.Context, creatorID uuid.UUID, op string, fn func(onboarding.Draft) onboarding.Draft) (onboarding.Draft, error) {
	ctx, span := tracer.Start(ctx, "Store."+op, trace.WithAttributes(attribute.String("creator_id", creatorID.String())))
	defer span.End()

	current, err := uc.drafts.Load(ctx, creatorID)
	if err != nil {
		span.RecordError(err)
		return onboarding.Draft{}, err
	}

	next := fn(current)
	next.Version = onboarding.SchemaVersion
	next.UpdatedAt = uc.clock().UTC()

	if err := uc.drafts.Save(ctx, creatorID, next); err != nil {
		uc.logger.Error("Failed to persist onboarding draft", err,
			zap.String("creator_id", creatorID.String()), zap.String("op", op))
		span.RecordError(err)
		return onboarding.Draft{}, err
	}
	return next, nil
}

func (uc *StoreUseCase) SetConnectionStatus(ctx context.Context, creatorID uuid.UUID, status onboarding.ConnectionStatus) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "SetConnectionStatus", func(d onboarding.Draft) onboarding.Draft {
		return d.WithConnection(status)
	})
}

func (uc *StoreUseCase) MergeProfile(ctx context.Context, creatorID uuid.UUID, patch onboarding.ProfilePatch) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "MergeProfile", func(d onboarding.Draft) onboarding.Draft {
		return d.MergeProfile(patch)
	})
}

// AddSocial appends the link, generating an id when the caller left it empty.
func (uc *StoreUseCase) AddSocial(ctx context.Context, creatorID uuid.UUID, link onboarding.SocialLink) (onboarding.Draft, error) {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	return uc.mutate(ctx, creatorID, "AddSocial", func(d onboarding.Draft) onboarding.Draft {
		return d.AddSocial(link)
	})
}

func (uc *StoreUseCase) UpdateSocial(ctx context.Context, creatorID uuid.UUID, id string, patch onboarding.SocialLinkPatch) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "UpdateSocial", func(d onboarding.Draft) onboarding.Draft {
		return d.UpdateSocial(id, patch)
	})
}

func (uc *StoreUseCase) RemoveSocial(ctx context.Context, creatorID uuid.UUID, id string) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "RemoveSocial", func(d onboarding.Draft) onboarding.Draft {
		return d.RemoveSocial(id)
	})
}

func (uc *StoreUseCase) AddLink(ctx context.Context, creatorID uuid.UUID, link onboarding.CustomLink) (onboarding.Draft, error) {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	return uc.mutate(ctx, creatorID, "AddLink", func(d onboarding.Draft) onboarding.Draft {
		return d.AddLink(link)
	})
}

func (uc *StoreUseCase) UpdateLink(ctx context.Context, creatorID uuid.UUID, id string, patch onboarding.CustomLinkPatch) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "UpdateLink", func(d onboarding.Draft) onboarding.Draft {
		return d.UpdateLink(id, patch)
	})
}

func (uc *StoreUseCase) RemoveLink(ctx context.Context, creatorID uuid.UUID, id string) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "RemoveLink", func(d onboarding.Draft) onboarding.Draft {
		return d.RemoveLink(id)
	})
}

func (uc *StoreUseCase) SetCompleted(ctx context.Context, creatorID uuid.UUID, completed bool) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "SetCompleted", func(d onboarding.Draft) onboarding.Draft {
		return d.WithCompleted(completed)
	})
}

// Reset returns the creator's draft to the initial defaults.
func (uc *StoreUseCase) Reset(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	return uc.mutate(ctx, creatorID, "Reset", func(onboarding.Draft) onboarding.Draft {
		return onboarding.NewDraft()
	})
}
