// Package secret holds the language-model API credential. Values are never
// logged; callers may report only presence and length.
package secret

import (
	"errors"
	"os"
	"strings"
	"sync"
)

var ErrNotSet = errors.New("secret: credential not set")

// Store is the credential storage the pipeline depends on.
type Store interface {
	Get() (string, error)
	Set(value string) error
	Has() bool
}

// MemoryStore keeps the credential in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	value string
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Get() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.value == "" {
		return "", ErrNotSet
	}
	return s.value, nil
}

func (s *MemoryStore) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errors.New("secret: refusing to store empty credential")
	}
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Has() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value != ""
}

// EnvStore reads the credential from an environment variable and falls back
// to an in-memory value set at runtime.
type EnvStore struct {
	envKey string
	mem    MemoryStore
}

func NewEnvStore(envKey string) *EnvStore {
	return &EnvStore{envKey: envKey}
}

func (s *EnvStore) Get() (string, error) {
	if v, err := s.mem.Get(); err == nil {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(s.envKey)); v != "" {
		return v, nil
	}
	return "", ErrNotSet
}

func (s *EnvStore) Set(value string) error { return s.mem.Set(value) }

func (s *EnvStore) Has() bool {
	_, err := s.Get()
	return err == nil
}

// Describe reports credential presence without exposing the value.
// Safe to log.
func Describe(s Store) string {
	v, err := s.Get()
	if err != nil {
		return "credential: absent"
	}
	return "credential: present (" + lengthBucket(len(v)) + ")"
}

func lengthBucket(n int) string {
	switch {
	case n < 16:
		return "short"
	case n < 64:
		return "normal"
	default:
		return "long"
	}
}
