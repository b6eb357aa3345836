package prefs

import (
	"net/http"
	"sync"
)

// Memory is an in-process Store. Used by tests and as a fallback
// when no session secret is configured.
type Memory struct {
	mu   sync.Mutex
	vals map[string][]string
}

func NewMemory() *Memory {
	return &Memory{vals: make(map[string][]string)}
}

func (m *Memory) Get(_ *http.Request, entity, filter string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := m.vals[Key(entity, filter)]
	if len(saved) == 0 {
		return nil
	}
	out := make([]string, len(saved))
	copy(out, saved)
	return out
}

func (m *Memory) Set(_ http.ResponseWriter, _ *http.Request, entity, filter string, values []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(values) == 0 {
		delete(m.vals, Key(entity, filter))
		return
	}
	cp := make([]string, len(values))
	copy(cp, values)
	m.vals[Key(entity, filter)] = cp
}

func (m *Memory) Remove(_ http.ResponseWriter, _ *http.Request, entity, filter string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, Key(entity, filter))
}
