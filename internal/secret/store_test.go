package secret

import (
	"strings"
	"testing"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	if s.Has() {
		t.Fatalf("fresh store should be empty")
	}
	if _, err := s.Get(); err != ErrNotSet {
		t.Fatalf("expected ErrNotSet, got %v", err)
	}
	if err := s.Set("sk-test-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, err := s.Get()
	if err != nil || v != "sk-test-123" {
		t.Fatalf("get: %q, %v", v, err)
	}
}

func TestMemoryStore_RejectsEmpty(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Set("   "); err == nil {
		t.Fatalf("expected error storing blank credential")
	}
}

func TestEnvStore_FallsBackToEnv(t *testing.T) {
	t.Setenv("GEOPILOT_TEST_KEY", "from-env")
	s := NewEnvStore("GEOPILOT_TEST_KEY")
	v, err := s.Get()
	if err != nil || v != "from-env" {
		t.Fatalf("get: %q, %v", v, err)
	}

	// Runtime value wins over env.
	if err := s.Set("runtime-key"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := s.Get(); v != "runtime-key" {
		t.Fatalf("expected runtime value, got %q", v)
	}
}

func TestDescribe_NeverContainsValue(t *testing.T) {
	s := NewMemoryStore()
	if got := Describe(s); got != "credential: absent" {
		t.Fatalf("absent description: %q", got)
	}
	_ = s.Set("super-secret-value-abcdef")
	got := Describe(s)
	if strings.Contains(got, "super-secret") {
		t.Fatalf("description leaks the credential: %q", got)
	}
	if !strings.Contains(got, "present") {
		t.Fatalf("expected presence marker, got %q", got)
	}
}
