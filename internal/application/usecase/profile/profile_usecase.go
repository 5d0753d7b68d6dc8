package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/khoahotran/beehype-onboarding/internal/domain/profile"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
}

func NewProfileUseCase(repo profile.Repository) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: repo,
	}
}

type GetProfileInput struct {
	CreatorID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByCreatorID(ctx, input.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	return &GetProfileOutput{Profile: p}, nil
}

type ListProfilesInput struct {
	Limit  int
	Offset int
}

type ListProfilesOutput struct {
	Profiles []*profile.Profile
}

func (uc *ProfileUseCase) ExecuteListProfiles(ctx context.Context, input ListProfilesInput) (*ListProfilesOutput, error) {
	if input.Limit <= 0 || input.Limit > 100 {
		input.Limit = 20
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	profiles, err := uc.profileRepo.ListPublished(ctx, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles failed: %w", err)
	}
	return &ListProfilesOutput{Profiles: profiles}, nil
}
