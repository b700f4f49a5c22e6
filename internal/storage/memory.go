package storage

import (
	"context"
	"slices"
	"sync"
)

// Memory is an in-process Store used in tests.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
}

func NewMemory() *Memory {
	return &Memory{objects: make(map[string][]byte)}
}

func (m *Memory) PutObject(_ context.Context, key string, buf []byte, _ string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = slices.Clone(buf)
	m.puts++

	return nil
}

func (m *Memory) GetObject(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf, ok := m.objects[key]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(buf), nil
}

func (m *Memory) DownloadURL(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	return "memory://" + key, nil
}

// Puts returns how many writes the store has accepted.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.puts
}
