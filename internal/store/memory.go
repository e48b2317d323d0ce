package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryEntry struct {
	value string
	at    time.Time
}

// MemoryKV keeps values in process memory. Nothing survives a restart.
type MemoryKV struct {
	cache *gocache.Cache
}

// NewMemoryKV returns an empty in-memory store whose entries never expire.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	e, ok := m.entry(key)
	return e.value, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.cache.Set(key, memoryEntry{value: value, at: time.Now()}, gocache.NoExpiration)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.cache.Delete(key)
	return nil
}

func (m *MemoryKV) UpdatedAt(_ context.Context, key string) (time.Time, bool, error) {
	e, ok := m.entry(key)
	return e.at, ok, nil
}

// Close drops every entry.
func (m *MemoryKV) Close() error {
	m.cache.Flush()
	return nil
}

func (m *MemoryKV) entry(key string) (memoryEntry, bool) {
	v, ok := m.cache.Get(key)
	if !ok {
		return memoryEntry{}, false
	}
	e, ok := v.(memoryEntry)
	return e, ok
}
