package relay

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// handshakePrefix tags the identity frame every connection sends first.
const handshakePrefix = "IDENTIFY:"

// adminWelcome is the private frame sent to a newly connected admin.
const adminWelcome = "Bot: Você está conectado como administrador."

// Router orchestrates the per-connection state machine: handshake,
// broadcast, bot replies, and escalation. All registry mutations go
// through the Registry's lock; broadcasts iterate a snapshot and
// silently skip closed transports.
type Router struct {
	registry *Registry
	sink     Sink
}

func NewRouter(registry *Registry, sink Sink) *Router {
	return &Router{registry: registry, sink: sink}
}

// Connect tracks a freshly opened transport as an unidentified
// connection. No broadcast is emitted.
func (rt *Router) Connect(t Transport) *Connection {
	c := NewConnection(t)
	rt.registry.Add(c)
	return c
}

// HandleMessage processes one inbound text frame from c.
func (rt *Router) HandleMessage(ctx context.Context, c *Connection, text string) {
	// The handshake is only honored while unidentified; a later
	// IDENTIFY frame is ordinary chat text.
	if rt.registry.RoleOf(c) == RoleUnidentified && strings.HasPrefix(text, handshakePrefix) {
		rt.handleHandshake(ctx, c, text)
		return
	}

	username := rt.registry.DisplayName(c)
	isAdmin := rt.registry.IsAdmin(c)

	rt.sink.Save(username, text, "user")
	rt.broadcast(fmt.Sprintf("%s: %s", username, text))

	if isAdmin {
		rt.broadcast("Admin: " + text)
		rt.sink.Save("Admin", text, "admin")
		return
	}

	if reply, ok := Respond(text, username); ok {
		rt.broadcast(reply)
		rt.sink.Save("Bot", strings.TrimPrefix(reply, "Bot: "), "bot")
		return
	}

	if !NeedsHuman(text) {
		return
	}

	notice := fmt.Sprintf("Bot: %s, sua mensagem é complexa. Encaminhando ao administrador!", username)
	rt.broadcast(notice)
	if admin, ok := rt.registry.Admin(); ok {
		rt.send(admin, fmt.Sprintf("Message from %s: %s", username, text))
	} else {
		rt.broadcast(fmt.Sprintf("Bot: Desculpe, %s, nenhum administrador disponível.", username))
	}
	rt.sink.Save("Bot", strings.TrimPrefix(notice, "Bot: "), "bot")
}

// Disconnect unregisters a closed connection. A departed user gets a
// broadcast leave notice; an admin departure is only logged.
func (rt *Router) Disconnect(c *Connection) {
	role, username := rt.registry.Unregister(c)

	switch role {
	case RoleAdmin:
		slog.Info("administrator disconnected", "conn", c.ID)
	case RoleUser:
		slog.Info("user disconnected", "conn", c.ID, "username", username)
		notice := fmt.Sprintf("Bot: %s saiu do chat.", username)
		rt.broadcast(notice)
		rt.sink.Save(username, notice, "bot")
	default:
		slog.Info("unidentified client disconnected", "conn", c.ID)
	}
}

func (rt *Router) handleHandshake(ctx context.Context, c *Connection, frame string) {
	token := handshakeToken(frame)
	role := rt.registry.Register(c, token)

	if role == RoleAdmin {
		slog.Info("administrator connected", "conn", c.ID)
		rt.send(c, adminWelcome)
		rt.replayHistory(ctx, c)
		return
	}

	username := rt.registry.DisplayName(c)
	slog.Info("user connected", "conn", c.ID, "username", username)
	rt.send(c, fmt.Sprintf("Bot: Bem-vindo, %s!", username))

	notice := fmt.Sprintf("Bot: %s entrou no chat.", username)
	rt.broadcastExcept(c, notice)
	rt.sink.Save(username, notice, "bot")
}

// replayHistory sends the full chronological message log to a newly
// connected admin, one frame per stored message.
func (rt *Router) replayHistory(ctx context.Context, c *Connection) {
	history, err := rt.sink.History(ctx)
	if err != nil {
		slog.Error("history replay failed", "conn", c.ID, "error", err)
		return
	}
	for _, m := range history {
		rt.send(c, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}
}

// handshakeToken extracts the identity token from an IDENTIFY frame.
// Only the second colon-separated field counts; a bare "IDENTIFY:"
// yields the empty token.
func handshakeToken(frame string) string {
	parts := strings.Split(frame, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// broadcast sends a frame to every non-admin connection. A failed send
// means the peer is gone; it is skipped, never retried.
func (rt *Router) broadcast(text string) {
	for _, c := range rt.registry.Observers() {
		rt.send(c, text)
	}
}

// broadcastExcept is broadcast minus the sender itself.
func (rt *Router) broadcastExcept(sender *Connection, text string) {
	for _, c := range rt.registry.Observers(sender) {
		rt.send(c, text)
	}
}

func (rt *Router) send(c *Connection, text string) {
	if err := c.Transport.Send(text); err != nil {
		slog.Debug("send skipped, transport closed", "conn", c.ID)
	}
}
