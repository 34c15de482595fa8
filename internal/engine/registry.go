package engine

import (
	"sync"

	"github.com/krizhnx/internyx/internal/store"
)

// Registry hands out one Session per owner over a shared gateway
type Registry struct {
	mu       sync.Mutex
	gw       store.Gateway
	sessions map[string]*Session
}

// NewRegistry creates a registry over the gateway
func NewRegistry(gw store.Gateway) *Registry {
	return &Registry{
		gw:       gw,
		sessions: make(map[string]*Session),
	}
}

// Session returns the owner's session, creating it on first use
func (r *Registry) Session(ownerID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[ownerID]
	if !ok {
		s = NewSession(ownerID, r.gw)
		r.sessions[ownerID] = s
	}
	return s
}
