package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/khoahotran/beehype-onboarding/adapters/persistence"
	"github.com/khoahotran/beehype-onboarding/internal/config"
	"github.com/khoahotran/beehype-onboarding/internal/domain/creator"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/auth"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

func main() {
	fmt.Println("adding creator into database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer logger.Sync(appLogger)

	email := strings.ToLower(strings.TrimSpace(os.Getenv("CREATOR_EMAIL")))
	password := os.Getenv("CREATOR_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("CREATOR_EMAIL and CREATOR_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	c := &creator.Creator{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if name := os.Getenv("CREATOR_NAME"); name != "" {
		c.DisplayName = &name
	}

	repo := persistence.NewPostgresCreatorRepo(pool, appLogger)
	if err := repo.Save(context.Background(), c); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			fmt.Printf("creator '%s' already exists, nothing to do\n", email)
			return
		}
		log.Fatalf("cannot add creator: %v", err)
	}

	fmt.Printf("added creator '%s' (%s) successfully!\n", email, c.ID)
}
