package onboarding

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
)

type SubmitProfileInput struct {
	CreatorID uuid.UUID
	Name      string
	Headline  string
	Bio       string
	Location  string
	// Nil keeps the specialties already in the draft.
	Specialties *[]string
}

// SubmitProfile validates the profile form and merges it into the draft.
func (uc *WizardUseCase) SubmitProfile(ctx context.Context, in SubmitProfileInput) (onboarding.Draft, error) {
	form := onboarding.CreatorProfile{
		Name:     in.Name,
		Headline: in.Headline,
		Bio:      in.Bio,
		Location: in.Location,
	}
	if in.Specialties != nil {
		form.Specialties = *in.Specialties
	}

	valid, errs := onboarding.ValidateProfile(form)
	if len(errs) > 0 {
		return onboarding.Draft{}, apperror.NewValidation("profile validation failed", errs)
	}

	patch := onboarding.ProfilePatch{
		Name:     &valid.Name,
		Headline: &valid.Headline,
		Bio:      &valid.Bio,
		Location: &valid.Location,
	}
	if in.Specialties != nil {
		patch.Specialties = &valid.Specialties
	}
	return uc.store.MergeProfile(ctx, in.CreatorID, patch)
}

func (uc *WizardUseCase) SubmitSpecialties(ctx context.Context, creatorID uuid.UUID, specialties []string) (onboarding.Draft, error) {
	valid, errs := onboarding.ValidateSpecialties(specialties)
	if len(errs) > 0 {
		return onboarding.Draft{}, apperror.NewValidation("specialties validation failed", errs)
	}
	return uc.store.MergeProfile(ctx, creatorID, onboarding.ProfilePatch{Specialties: &valid})
}

// ProfileController gates "continue" on the profile step: the stored profile
// has to pass validation.
func (uc *WizardUseCase) ProfileController() onboarding.StepController {
	return onboarding.StepControllerFunc(func(ctx context.Context, creatorID uuid.UUID) bool {
		d, err := uc.store.Get(ctx, creatorID)
		if err != nil {
			uc.logger.Warn("Profile gate could not load draft", zap.String("creator_id", creatorID.String()), zap.Error(err))
			return false
		}
		_, errs := onboarding.ValidateProfile(d.Profile)
		return len(errs) == 0
	})
}

type SocialLinkInput struct {
	Platform string
	Username string
	URL      string
}

// AddSocial adds a new row with a fresh id. Rows are validated when saved,
// so a blank row is accepted here.
func (uc *WizardUseCase) AddSocial(ctx context.Context, creatorID uuid.UUID, in SocialLinkInput) (onboarding.SocialLink, onboarding.Draft, error) {
	link := onboarding.AutofillURL(onboarding.SocialLink{}, onboarding.SocialLink{
		ID:       uuid.NewString(),
		Platform: in.Platform,
		Username: in.Username,
		URL:      in.URL,
	})
	d, err := uc.store.AddSocial(ctx, creatorID, link)
	if err != nil {
		return onboarding.SocialLink{}, onboarding.Draft{}, err
	}
	return link, d, nil
}

// SaveSocial merges the patch into an existing row, fills the profile url
// when it can be derived and validates the whole row before storing it.
func (uc *WizardUseCase) SaveSocial(ctx context.Context, creatorID uuid.UUID, linkID string, patch onboarding.SocialLinkPatch) (onboarding.Draft, error) {
	d, err := uc.store.Get(ctx, creatorID)
	if err != nil {
		return onboarding.Draft{}, err
	}
	prev, ok := d.FindSocial(linkID)
	if !ok {
		return onboarding.Draft{}, apperror.NewNotFound("social link", linkID)
	}

	merged := onboarding.AutofillURL(prev, patch.Apply(prev))
	valid, errs := onboarding.ValidateSocialLink(merged)
	if len(errs) > 0 {
		return onboarding.Draft{}, apperror.NewValidation("social link validation failed", errs)
	}

	return uc.store.UpdateSocial(ctx, creatorID, linkID, onboarding.SocialLinkPatch{
		Platform: &valid.Platform,
		Username: &valid.Username,
		URL:      &valid.URL,
	})
}

func (uc *WizardUseCase) RemoveSocial(ctx context.Context, creatorID uuid.UUID, linkID string) (onboarding.Draft, error) {
	return uc.store.RemoveSocial(ctx, creatorID, linkID)
}

type CustomLinkInput struct {
	Label string
	URL   string
}

func (uc *WizardUseCase) AddLink(ctx context.Context, creatorID uuid.UUID, in CustomLinkInput) (onboarding.CustomLink, onboarding.Draft, error) {
	link := onboarding.CustomLink{ID: uuid.NewString(), Label: in.Label, URL: in.URL}
	d, err := uc.store.AddLink(ctx, creatorID, link)
	if err != nil {
		return onboarding.CustomLink{}, onboarding.Draft{}, err
	}
	return link, d, nil
}

func (uc *WizardUseCase) SaveLink(ctx context.Context, creatorID uuid.UUID, linkID string, patch onboarding.CustomLinkPatch) (onboarding.Draft, error) {
	d, err := uc.store.Get(ctx, creatorID)
	if err != nil {
		return onboarding.Draft{}, err
	}
	prev, ok := d.FindLink(linkID)
	if !ok {
		return onboarding.Draft{}, apperror.NewNotFound("custom link", linkID)
	}

	valid, errs := onboarding.ValidateCustomLink(patch.Apply(prev))
	if len(errs) > 0 {
		return onboarding.Draft{}, apperror.NewValidation("custom link validation failed", errs)
	}

	return uc.store.UpdateLink(ctx, creatorID, linkID, onboarding.CustomLinkPatch{
		Label: &valid.Label,
		URL:   &valid.URL,
	})
}

func (uc *WizardUseCase) RemoveLink(ctx context.Context, creatorID uuid.UUID, linkID string) (onboarding.Draft, error) {
	return uc.store.RemoveLink(ctx, creatorID, linkID)
}
