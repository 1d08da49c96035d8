package relay

import "github.com/google/uuid"

// Role is the identity a connection assumes after its handshake.
type Role int

const (
	RoleUnidentified Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unidentified"
	}
}

// AnonymousName is the display name for connections whose handshake
// carried no username.
const AnonymousName = "Usuário Anônimo"

// Transport is the outbound half of a live connection. Send fails once
// the peer is gone; the relay treats such failures as skips, never as
// fatal errors.
type Transport interface {
	Send(text string) error
}

// Connection is one live transport session. Role and username are
// assigned exactly once by the Registry on handshake and are only
// read or written under the Registry lock.
type Connection struct {
	ID        string
	Transport Transport

	role     Role
	username string
}

// NewConnection wraps a transport in a fresh unidentified connection.
func NewConnection(t Transport) *Connection {
	return &Connection{ID: uuid.NewString(), Transport: t}
}
