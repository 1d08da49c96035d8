package relay

import "sync"

// AdminToken is the handshake token that claims the administrator slot.
const AdminToken = "ADMIN"

// Registry tracks live connections and the single administrator slot.
// The admin slot holds a connection ID resolved through the map, so a
// closed admin can never be reached through a stale pointer.
//
// A new admin handshake silently replaces the slot; the previous admin
// connection stays registered and keeps receiving broadcasts like any
// other participant.
type Registry struct {
	mu      sync.RWMutex
	conns   map[string]*Connection
	adminID string
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Connection)}
}

// Add tracks a freshly opened, still unidentified connection.
func (r *Registry) Add(c *Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.ID] = c
}

// Register assigns the connection its role from the handshake token.
// "ADMIN" claims the admin slot; any other non-empty token becomes the
// username; an empty token falls back to the anonymous label.
func (r *Registry) Register(c *Connection, token string) Role {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token == AdminToken {
		c.role = RoleAdmin
		r.adminID = c.ID
		return RoleAdmin
	}

	c.role = RoleUser
	if token != "" {
		c.username = token
	} else {
		c.username = AnonymousName
	}
	return RoleUser
}

// Unregister removes the connection and clears the admin slot if it
// held it. Returns the role and display name the connection had, so
// the caller can decide on a departure notice.
func (r *Registry) Unregister(c *Connection) (Role, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.conns, c.ID)
	if r.adminID == c.ID {
		r.adminID = ""
	}
	return c.role, displayName(c)
}

// Observers returns a snapshot of every connection that should receive
// a broadcast: all registered connections except the current admin and
// except the listed senders. Iterating the snapshot is safe against
// concurrent connects and closes.
func (r *Registry) Observers(except ...*Connection) []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Connection, 0, len(r.conns))
	for id, c := range r.conns {
		if id == r.adminID {
			continue
		}
		skip := false
		for _, e := range except {
			if e != nil && e.ID == id {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

// Admin returns the current administrator connection, if one is open.
func (r *Registry) Admin() (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[r.adminID]
	return c, ok
}

// IsAdmin reports whether c currently holds the admin slot.
func (r *Registry) IsAdmin(c *Connection) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adminID != "" && r.adminID == c.ID
}

// RoleOf returns the connection's current role.
func (r *Registry) RoleOf(c *Connection) Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return c.role
}

// DisplayName returns the connection's username, or the anonymous
// label when none was registered.
func (r *Registry) DisplayName(c *Connection) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return displayName(c)
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}

func displayName(c *Connection) string {
	if c.username != "" {
		return c.username
	}
	return AnonymousName
}
