package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/beehype-onboarding/internal/domain/onboarding"
	"github.com/khoahotran/beehype-onboarding/pkg/apperror"
	"github.com/khoahotran/beehype-onboarding/pkg/logger"
)

// DraftKey is the namespaced key one creator's draft lives under.
func DraftKey(storageKey string, creatorID uuid.UUID) string {
	return storageKey + ":" + creatorID.String()
}

type redisDraftStore struct {
	rdb        *redis.Client
	storageKey string
	ttl        time.Duration
	logger     logger.Logger
}

// NewRedisDraftStore keeps drafts as JSON strings. A ttl of zero keeps them forever.
func NewRedisDraftStore(rdb *redis.Client, storageKey string, ttl time.Duration, log logger.Logger) onboarding.DraftStore {
	return &redisDraftStore{rdb: rdb, storageKey: storageKey, ttl: ttl, logger: log}
}

func (s *redisDraftStore) Load(ctx context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	key := DraftKey(s.storageKey, creatorID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return onboarding.NewDraft(), nil
		}
		return onboarding.Draft{}, apperror.NewInternal("failed to read onboarding draft", err)
	}

	d, err := onboarding.DecodeDraft(raw)
	if err != nil {
		s.logger.Warn("Discarding unreadable onboarding draft", zap.String("key", key), zap.Error(err))
		return onboarding.NewDraft(), nil
	}
	return d, nil
}

func (s *redisDraftStore) Save(ctx context.Context, creatorID uuid.UUID, d onboarding.Draft) error {
	raw, err := onboarding.EncodeDraft(d)
	if err != nil {
		return apperror.NewInternal("failed to encode onboarding draft", err)
	}
	if err := s.rdb.Set(ctx, DraftKey(s.storageKey, creatorID), raw, s.ttl).Err(); err != nil {
		return apperror.NewInternal("failed to write onboarding draft", err)
	}
	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, creatorID uuid.UUID) error {
	if err := s.rdb.Del(ctx, DraftKey(s.storageKey, creatorID)).Err(); err != nil {
		return apperror.NewInternal("failed to delete onboarding draft", err)
	}
	return nil
}

// memoryDraftStore holds encoded drafts so reads go through the same
// decode path as Redis.
type memoryDraftStore struct {
	mu         sync.RWMutex
	storageKey string
	entries    map[string][]byte
	logger     logger.Logger
}

func NewMemoryDraftStore(storageKey string, log logger.Logger) onboarding.DraftStore {
	return &memoryDraftStore{
		storageKey: storageKey,
		entries:    make(map[string][]byte),
		logger:     log,
	}
}

func (s *memoryDraftStore) Load(_ context.Context, creatorID uuid.UUID) (onboarding.Draft, error) {
	key := DraftKey(s.storageKey, creatorID)
	s.mu.RLock()
	raw, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return onboarding.NewDraft(), nil
	}

	d, err := onboarding.DecodeDraft(raw)
	if err != nil {
		s.logger.Warn("Discarding unreadable onboarding draft", zap.String("key", key), zap.Error(err))
		return onboarding.NewDraft(), nil
	}
	return d, nil
}

func (s *memoryDraftStore) Save(_ context.Context, creatorID uuid.UUID, d onboarding.Draft) error {
	raw, err := onboarding.EncodeDraft(d)
	if err != nil {
		return apperror.NewInternal("failed to encode onboarding draft", err)
	}
	s.mu.Lock()
	s.entries[DraftKey(s.storageKey, creatorID)] = raw
	s.mu.Unlock()
	return nil
}

func (s *memoryDraftStore) Delete(_ context.Context, creatorID uuid.UUID) error {
	s.mu.Lock()
	delete(s.entries, DraftKey(s.storageKey, creatorID))
	s.mu.Unlock()
	return nil
}
