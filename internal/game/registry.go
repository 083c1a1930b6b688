package game

import "sync"

// Sender is the outbound side of one player connection. Send enqueues a frame
// and reports false when the receiver can no longer keep up; it must never
// block. Close tears the connection down and is safe to call more than once.
type Sender interface {
	Send(payload []byte) bool
	Close()
}

// Registry tracks live player connections keyed by client identity.
// All methods are safe for concurrent use; no caller ever observes a
// half-updated membership.
type Registry struct {
	mu      sync.RWMutex
	players map[string]Sender
}

func NewRegistry() *Registry {
	return &Registry{players: make(map[string]Sender)}
}

// Register stores the sender for id, replacing and closing any previous
// connection registered under the same identity.
func (r *Registry) Register(id string, s Sender) {
	r.mu.Lock()
	old := r.players[id]
	r.players[id] = s
	r.mu.Unlock()

	if old != nil && old != s {
		old.Close()
	}
}

// Deregister removes id. Absent ids are a no-op.
func (r *Registry) Deregister(id string) {
	r.mu.Lock()
	delete(r.players, id)
	r.mu.Unlock()
}

// DeregisterSender removes id only while s is still the registered sender.
// A connection tearing itself down must not evict a newer connection that
// re-registered under the same identity in the meantime.
func (r *Registry) DeregisterSender(id string, s Sender) {
	r.mu.Lock()
	if r.players[id] == s {
		delete(r.players, id)
	}
	r.mu.Unlock()
}

// Online reports whether id currently has a registered connection.
func (r *Registry) Online(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.players[id]
	return ok
}

// IDs returns the identities of all registered connections.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	return ids
}

// Get returns the sender registered under id.
func (r *Registry) Get(id string) (Sender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.players[id]
	return s, ok
}

// Snapshot returns a point-in-time copy of the membership minus the excluded
// identities. Connections joining after the snapshot is taken are unaffected
// by whatever fan-out the caller performs over it.
func (r *Registry) Snapshot(excluded ...string) []Sender {
	skip := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		skip[id] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	targets := make([]Sender, 0, len(r.players))
	for id, s := range r.players {
		if skip[id] {
			continue
		}
		targets = append(targets, s)
	}
	return targets
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.players)
}
