package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/khoahotran/beehype-onboarding/pkg/auth"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type Handlers struct {
	Auth       *AuthHandler
	Onboarding *OnboardingHandler
	Profile    *ProfileHandler
}

func NewRouter(h Handlers, jwtSvc *auth.JWTService, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
		api.POST("/auth/login", h.Auth.Login)
		api.GET("/creators", h.Profile.ListProfiles)

		private := api.Group("/")
		private.Use(AuthMiddleware(jwtSvc, log))
		{
			private.GET("/profile", h.Profile.GetProfile)

			ob := private.Group("/onboarding")
			{
				ob.GET("", h.Onboarding.GetDraft)
				ob.DELETE("", h.Onboarding.ResetDraft)
				ob.GET("/catalog", h.Onboarding.Catalog)
				ob.GET("/summary", h.Onboarding.Summary)

				ob.GET("/steps/:step", h.Onboarding.GetStep)
				ob.POST("/steps/:step/back", h.Onboarding.Back)
				ob.POST("/steps/:step/continue", h.Onboarding.Continue)
				ob.POST("/skip", h.Onboarding.Skip)

				ob.PUT("/profile", h.Onboarding.SubmitProfile)
				ob.PUT("/specialties", h.Onboarding.SubmitSpecialties)

				ob.POST("/gmail/connect", h.Onboarding.ConnectGmail)
				ob.POST("/gmail/retry", h.Onboarding.RetryGmail)

				ob.POST("/socials", h.Onboarding.AddSocial)
				ob.PATCH("/socials/:id", h.Onboarding.UpdateSocial)
				ob.DELETE("/socials/:id", h.Onboarding.RemoveSocial)

				ob.POST("/links", h.Onboarding.AddLink)
				ob.PATCH("/links/:id", h.Onboarding.UpdateLink)
				ob.DELETE("/links/:id", h.Onboarding.RemoveLink)
			}
		}
	}

	return router
}
