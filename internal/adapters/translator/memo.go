package translator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	portssvc "github.com/SscSPs/property_market_app/internal/core/ports/services"
	"github.com/SscSPs/property_market_app/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const memoKeyPrefix = "translation:"

// MemoStore is the subset of a redis client the memo needs.
type MemoStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Memo remembers successful translations in redis, keyed by target language
// and a hash of the source text. Redis failures only cost a translator call.
type Memo struct {
	next  portssvc.Translator
	store MemoStore
	ttl   time.Duration
}

var _ portssvc.Translator = (*Memo)(nil)

// NewMemo wraps next with a redis memo whose entries live for ttl.
func NewMemo(next portssvc.Translator, store MemoStore, ttl time.Duration) *Memo {
	return &Memo{next: next, store: store, ttl: ttl}
}

func (m *Memo) Translate(ctx context.Context, text string, target domain.Language) (string, error) {
	key := memoKey(text, target)

	cached, err := m.store.Get(ctx, key).Result()
	switch {
	case err == nil && cached != "":
		return cached, nil
	case err != nil && !errors.Is(err, redis.Nil):
		logger.Warn(ctx, "translation memo read failed", "error", err, "language", target)
	}

	out, err := m.next.Translate(ctx, text, target)
	if err != nil {
		return "", err
	}
	if err := m.store.Set(ctx, key, out, m.ttl).Err(); err != nil {
		logger.Warn(ctx, "translation memo write failed", "error", err, "language", target)
	}
	return out, nil
}

func memoKey(text string, target domain.Language) string {
	sum := sha256.Sum256([]byte(text))
	return memoKeyPrefix + string(target) + ":" + hex.EncodeToString(sum[:])
}
