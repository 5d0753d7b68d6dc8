package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/beehype-onboarding/internal/application/usecase/profile"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: uc,
		logger:         log,
	}
}

// GetProfile returns the caller's published profile. It exists once the
// worker has processed their completed onboarding.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	creatorID, ok := GetCreatorIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("creatorID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{CreatorID: creatorID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToPublishedProfileDTO(output.Profile))
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	output, err := h.profileUseCase.ExecuteListProfiles(c.Request.Context(), profileUC.ListProfilesInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]PublishedProfileDTO, len(output.Profiles))
	for i, p := range output.Profiles {
		dtos[i] = ToPublishedProfileDTO(p)
	}
	c.JSON(http.StatusOK, gin.H{"data": dtos})
}
