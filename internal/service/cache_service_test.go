package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/fileflow-portal-api/pkg/errors"
)

type memoryCache struct {
	items    map[string][]byte
	getErr   error
	patterns []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	for key := range m.items {
		if key == pattern || (wildcard && strings.HasPrefix(key, prefix)) {
			delete(m.items, key)
		}
	}
	return nil
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, NewMetricsService(), time.Minute, nil, true)
	ctx := context.Background()

	var out []string
	assert.False(t, svc.Get(ctx, "k", &out))

	svc.Set(ctx, "k", []string{"nfe"})
	require.True(t, svc.Get(ctx, "k", &out))
	assert.Equal(t, []string{"nfe"}, out)

	svc.Invalidate(ctx, "k")
	assert.False(t, svc.Get(ctx, "k", &out))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	svc.Set(ctx, "k", 1)
	assert.Empty(t, repo.items)
	var out int
	assert.False(t, svc.Get(ctx, "k", &out))
	assert.False(t, (*CacheService)(nil).Enabled())
}

func TestCacheServiceErrorsAreMisses(t *testing.T) {
	repo := newMemoryCache()
	repo.getErr = errors.New("connection reset")
	svc := NewCacheService(repo, nil, 0, nil, true)

	var out int
	assert.False(t, svc.Get(context.Background(), "k", &out))
}
