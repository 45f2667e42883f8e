package imagestore

import (
	"context"
	"sync"

	"storefront-backend/internal/apperr"
)

// Memory is the dev-only backend: process-lifetime, lost on restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]string),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	dataURL, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return "", apperr.E(apperr.KindNotFound, "image not found", nil)
	}
	return dataURL, nil
}

func (m *Memory) Put(ctx context.Context, key string, dataURL string) error {
	m.mu.Lock()
	m.entries[key] = dataURL
	m.mu.Unlock()
	return nil
}
