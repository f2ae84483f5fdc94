package profile

import (
	"context"
	"maps"
	"sync"
)

// MemoryClaims is an in-memory ClaimsWriter for local development and tests.
type MemoryClaims struct {
	mu     sync.RWMutex
	claims map[string]map[string]interface{}
	calls  int
}

// NewMemoryClaims returns an empty claims store.
func NewMemoryClaims() *MemoryClaims {
	return &MemoryClaims{claims: make(map[string]map[string]interface{})}
}

// SetCustomUserClaims replaces the claims object of uid.
func (m *MemoryClaims) SetCustomUserClaims(_ context.Context, uid string, claims map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.claims[uid] = maps.Clone(claims)
	m.calls++
	return nil
}

// Claims returns a copy of the claims currently set on uid.
func (m *MemoryClaims) Claims(uid string) (map[string]interface{}, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	claims, ok := m.claims[uid]
	return maps.Clone(claims), ok
}

// Calls returns how many claim writes were made.
func (m *MemoryClaims) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
