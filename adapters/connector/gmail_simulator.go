package connector

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/internal/config"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

// GmailSimulator stands in for the Gmail OAuth handshake: it waits a fixed
// delay and succeeds with a fixed probability.
type GmailSimulator struct {
	delay       time.Duration
	successRate float64
	logger      logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGmailSimulator(cfg config.Onboarding, log logger.Logger) *GmailSimulator {
	return NewGmailSimulatorWithSource(cfg.GmailDelay, cfg.GmailSuccessRate, rand.NewPCG(rand.Uint64(), rand.Uint64()), log)
}

func NewGmailSimulatorWithSource(delay time.Duration, successRate float64, src rand.Source, log logger.Logger) *GmailSimulator {
	return &GmailSimulator{
		delay:       delay,
		successRate: min(max(successRate, 0), 1),
		logger:      log,
		rng:         rand.New(src),
	}
}

// Connect returns ctx.Err() if the context ends before the delay elapses.
func (g *GmailSimulator) Connect(ctx context.Context, creatorID uuid.UUID) (bool, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return false, err
	}

	g.mu.Lock()
	ok := g.rng.Float64() < g.successRate
	g.mu.Unlock()

	g.logger.Debug("Simulated gmail connection", zap.String("creator_id", creatorID.String()), zap.Bool("success", ok))
	return ok, nil
}
