package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDocumentNotFound is returned for an unknown or expired preview session
var ErrDocumentNotFound = errors.New("session expired or not found")

// DocumentStoreInterface keeps rendered preview pages for a limited time
type DocumentStoreInterface interface {
	Put(ctx context.Context, id string, pages map[int][]byte, ttl time.Duration) error
	Get(ctx context.Context, id string) (map[int][]byte, error)
}

// MemoryDocumentStore keeps pages in process memory
type MemoryDocumentStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	pages     map[int][]byte
	expiresAt time.Time
}

// NewMemoryDocumentStore creates an empty MemoryDocumentStore
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

var _ DocumentStoreInterface = (*MemoryDocumentStore)(nil)

func (s *MemoryDocumentStore) Put(ctx context.Context, id string, pages map[int][]byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{pages: pages, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryDocumentStore) Get(ctx context.Context, id string) (map[int][]byte, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok || !s.now().Before(entry.expiresAt) {
		return nil, ErrDocumentNotFound
	}
	return entry.pages, nil
}

// Sweep drops expired entries and reports how many were removed
func (s *MemoryDocumentStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// RunJanitor sweeps expired entries every interval until ctx is done
func (s *MemoryDocumentStore) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// RedisDocumentStore keeps pages in Redis so every instance can serve a session
type RedisDocumentStore struct {
	rdb *redis.Client
}

const redisKeyPrefix = "orderform:preview:"

// NewRedisDocumentStore connects to redisURL and pings it
func NewRedisDocumentStore(ctx context.Context, redisURL string) (*RedisDocumentStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &RedisDocumentStore{rdb: rdb}, nil
}

var _ DocumentStoreInterface = (*RedisDocumentStore)(nil)

func (s *RedisDocumentStore) Put(ctx context.Context, id string, pages map[int][]byte, ttl time.Duration) error {
	// map[int][]byte marshals as {"1": "<base64>"}
	data, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("failed to marshal preview pages: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+id, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store preview pages: %w", err)
	}
	return nil
}

func (s *RedisDocumentStore) Get(ctx context.Context, id string) (map[int][]byte, error) {
	val, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get preview pages: %w", err)
	}

	var pages map[int][]byte
	if err := json.Unmarshal(val, &pages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preview pages: %w", err)
	}
	return pages, nil
}

// Close releases the Redis connection pool
func (s *RedisDocumentStore) Close() error {
	return s.rdb.Close()
}
