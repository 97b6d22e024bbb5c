package cache

import (
	"context"
	"sync"
	"time"
)

type mockData struct {
	mu      sync.Mutex
	entries map[string]time.Time
	err     error
}

// MockRedisClient is an in-memory SeenCache for tests
type MockRedisClient struct {
	*mockData
	prefix string
}

func NewMockRedisClient(prefix string) *MockRedisClient {
	return &MockRedisClient{
		mockData: &mockData{entries: make(map[string]time.Time)},
		prefix:   prefix,
	}
}

// WithPrefix returns a client over the same keyspace using another prefix,
// like a second Redis client pointed at the same server.
func (m *MockRedisClient) WithPrefix(prefix string) *MockRedisClient {
	return &MockRedisClient{mockData: m.mockData, prefix: prefix}
}

// SetError makes every later call fail with err
func (m *MockRedisClient) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Len returns the number of stored keys across all prefixes
func (m *MockRedisClient) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MockRedisClient) Close() error {
	return nil
}

func (m *MockRedisClient) IsProcessed(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	key := m.prefix + Hash(id)
	expires, exists := m.entries[key]
	if !exists {
		return false, nil
	}
	if !expires.IsZero() && time.Now().After(expires) {
		delete(m.entries, key)
		return false, nil
	}
	return true, nil
}

func (m *MockRedisClient) MarkProcessed(ctx context.Context, id string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	m.entries[m.prefix+Hash(id)] = expires
	return nil
}
