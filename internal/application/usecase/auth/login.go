package auth

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/internal/domain/creator"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/auth"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

type LoginUseCase struct {
	creatorRepo creator.Repository
	jwtSvc      *auth.JWTService
	logger      logger.Logger
}

func NewLoginUseCase(repo creator.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		creatorRepo: repo,
		jwtSvc:      jwtSvc,
		logger:      log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("auth_usecase")

// Execute never tells the caller whether the email exists.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "Login.Execute")
	defer span.End()

	c, err := uc.creatorRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.NewUnauthorized("unknown email", nil)
		}
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, c.PasswordHash) {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(c.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("creator_id", c.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("creator_id", c.ID.String()))
	return &LoginOutput{AccessToken: token}, nil
}
