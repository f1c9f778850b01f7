package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

const stateTTL = 10 * time.Minute

// StateManager tracks in-flight OAuth state tokens so callbacks can be
// matched to the flow that started them.
type StateManager struct {
	mu     sync.Mutex
	states map[string]stateEntry
}

type stateEntry struct {
	provider  string
	createdAt time.Time
}

func NewStateManager() *StateManager {
	sm := &StateManager{states: make(map[string]stateEntry)}
	go sm.cleanupLoop()
	return sm
}

// Generate creates and records a cryptographically random state token.
func (sm *StateManager) Generate(provider string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	sm.mu.Lock()
	sm.states[state] = stateEntry{provider: provider, createdAt: time.Now()}
	sm.mu.Unlock()
	return state, nil
}

// Consume validates a callback's state token and removes it; state tokens
// are single-use.
func (sm *StateManager) Consume(state, provider string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	entry, ok := sm.states[state]
	if !ok {
		return false
	}
	delete(sm.states, state)
	return entry.provider == provider && time.Since(entry.createdAt) < stateTTL
}

func (sm *StateManager) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-stateTTL)
		sm.mu.Lock()
		for state, entry := range sm.states {
			if entry.createdAt.Before(cutoff) {
				delete(sm.states, state)
			}
		}
		sm.mu.Unlock()
	}
}
