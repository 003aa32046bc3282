package translator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/property_market_app/internal/core/domain"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapStore struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	readErr error
}

func newMapStore() *mapStore {
	return &mapStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *mapStore) Get(_ context.Context, key string) *redis.StringCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return redis.NewStringResult("", s.readErr)
	}
	v, ok := s.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (s *mapStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value.(string)
	s.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestMemo_HitSkipsTranslator(t *testing.T) {
	next := &countingTranslator{out: "Căn hộ"}
	store := newMapStore()
	memo := NewMemo(next, store, time.Hour)

	first, err := memo.Translate(context.Background(), "Apartment", domain.LanguageVietnamese)
	require.NoError(t, err)
	second, err := memo.Translate(context.Background(), "Apartment", domain.LanguageVietnamese)
	require.NoError(t, err)

	assert.Equal(t, "Căn hộ", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.calls)
	assert.Equal(t, time.Hour, store.ttls[memoKey("Apartment", domain.LanguageVietnamese)])
}

func TestMemo_KeyedByLanguage(t *testing.T) {
	assert.NotEqual(t, memoKey("Apartment", domain.LanguageVietnamese), memoKey("Apartment", domain.LanguageLao))
	assert.NotEqual(t, memoKey("Apartment", domain.LanguageLao), memoKey("House", domain.LanguageLao))
}

func TestMemo_ErrorsAreNotCached(t *testing.T) {
	next := &countingTranslator{err: errors.New("down")}
	store := newMapStore()
	memo := NewMemo(next, store, time.Hour)

	_, err := memo.Translate(context.Background(), "Apartment", domain.LanguageLao)

	assert.Error(t, err)
	assert.Empty(t, store.values)
}

func TestMemo_StoreFailureFallsThrough(t *testing.T) {
	next := &countingTranslator{out: "ອາພາດເມັນ"}
	store := newMapStore()
	store.readErr = errors.New("connection refused")
	memo := NewMemo(next, store, time.Hour)

	out, err := memo.Translate(context.Background(), "Apartment", domain.LanguageLao)

	require.NoError(t, err)
	assert.Equal(t, "ອາພາດເມັນ", out)
	assert.Equal(t, int32(1), next.calls)
}
