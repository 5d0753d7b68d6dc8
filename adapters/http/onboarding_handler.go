package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/khoahotran/beehype-onboarding/internal/application/usecase/onboarding"
	domain "github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type OnboardingHandler struct {
	store  *onboarding.StoreUseCase
	wizard *onboarding.WizardUseCase
	gmail  *onboarding.GmailUseCase
	rules  []domain.CompletionRule
	logger logger.Logger
}

func NewOnboardingHandler(
	store *onboarding.StoreUseCase,
	wizard *onboarding.WizardUseCase,
	gmail *onboarding.GmailUseCase,
	log logger.Logger,
) *OnboardingHandler {
	return &OnboardingHandler{
		store:  store,
		wizard: wizard,
		gmail:  gmail,
		rules:  domain.DefaultCompletionRules(),
		logger: log,
	}
}

func creatorID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetCreatorIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("creatorID not found in context"))
	}
	return id, ok
}

// bindOptionalJSON accepts an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.NewInvalidInput("invalid JSON body", err)
	}
	return nil
}

func (h *OnboardingHandler) GetDraft(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	d, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft":    ToDraftDTO(d),
		"progress": ToProgressDTO(domain.ComputeProgress(d, h.rules)),
	})
}

func (h *OnboardingHandler) ResetDraft(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	d, err := h.wizard.Reset(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) GetStep(c *gin.Context) {
	c.JSON(http.StatusOK, ToStepViewDTO(h.wizard.View(c.Param("step"))))
}

func (h *OnboardingHandler) Back(c *gin.Context) {
	c.JSON(http.StatusOK, ToTransitionDTO(h.wizard.Back(c.Param("step"))))
}

// Continue optionally carries the profile form. It is stored first so the
// profile step's gate sees it.
func (h *OnboardingHandler) Continue(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req ContinueRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	step, _ := domain.ResolveStep(c.Param("step"))
	if req.Profile != nil && step == domain.StepProfile {
		if _, err := h.wizard.SubmitProfile(c.Request.Context(), toSubmitProfileInput(id, *req.Profile)); err != nil {
			c.Error(err)
			return
		}
	}

	t, err := h.wizard.Continue(c.Request.Context(), id, c.Param("step"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToTransitionDTO(t))
}

func (h *OnboardingHandler) Skip(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req SkipRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	t, err := h.wizard.Skip(id, req.From, req.Confirm)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToTransitionDTO(t))
}

func toSubmitProfileInput(id uuid.UUID, req ProfileRequest) onboarding.SubmitProfileInput {
	return onboarding.SubmitProfileInput{
		CreatorID:   id,
		Name:        req.Name,
		Headline:    req.Headline,
		Bio:         req.Bio,
		Location:    req.Location,
		Specialties: req.Specialties,
	}
}

func (h *OnboardingHandler) SubmitProfile(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for profile", err))
		return
	}

	d, err := h.wizard.SubmitProfile(c.Request.Context(), toSubmitProfileInput(id, req))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) SubmitSpecialties(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req SpecialtiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for specialties", err))
		return
	}

	d, err := h.wizard.SubmitSpecialties(c.Request.Context(), id, req.Specialties)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) ConnectGmail(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	d, err := h.gmail.Connect(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusAccepted, ToDraftDTO(d))
}

func (h *OnboardingHandler) RetryGmail(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	d, err := h.gmail.Retry(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) AddSocial(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req SocialLinkRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	link, d, err := h.wizard.AddSocial(c.Request.Context(), id, onboarding.SocialLinkInput{
		Platform: req.Platform,
		Username: req.Username,
		URL:      req.URL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"link": ToSocialLinkDTO(link), "draft": ToDraftDTO(d)})
}

func (h *OnboardingHandler) UpdateSocial(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req SocialLinkPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for social link", err))
		return
	}

	d, err := h.wizard.SaveSocial(c.Request.Context(), id, c.Param("id"), req.ToPatch())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) RemoveSocial(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	d, err := h.wizard.RemoveSocial(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) AddLink(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req CustomLinkRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	link, d, err := h.wizard.AddLink(c.Request.Context(), id, onboarding.CustomLinkInput{Label: req.Label, URL: req.URL})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"link": ToCustomLinkDTO(link), "draft": ToDraftDTO(d)})
}

func (h *OnboardingHandler) UpdateLink(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	var req CustomLinkPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid JSON body for custom link", err))
		return
	}

	d, err := h.wizard.SaveLink(c.Request.Context(), id, c.Param("id"), req.ToPatch())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) RemoveLink(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	d, err := h.wizard.RemoveLink(c.Request.Context(), id, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToDraftDTO(d))
}

func (h *OnboardingHandler) Summary(c *gin.Context) {
	id, ok := creatorID(c)
	if !ok {
		return
	}

	s, err := h.wizard.Summary(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToSummaryDTO(s))
}

func (h *OnboardingHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, NewCatalogDTO())
}
