package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Abdulai258/aula/internal/config"
	httpapi "github.com/Abdulai258/aula/internal/http"
	"github.com/Abdulai258/aula/internal/store"
	"github.com/Abdulai258/aula/internal/store/memory"
)

func startTestRelay(t *testing.T) (addr string, stores *store.Stores) {
	t.Helper()

	stores = memory.NewStores()
	sink := NewAsyncSink(stores.Messages)
	t.Cleanup(sink.Close)

	router := NewRouter(NewRegistry(), sink)
	cfg := config.Default()
	cfg.Web.Dir = ""

	srv := NewServer(cfg, router, httpapi.NewTicketsHandler(stores.Tickets))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	addr, start := StartTestServer(srv, ctx)
	go start()
	return addr, stores
}

func dialRelay(t *testing.T, addr string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+addr+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendFrame(t *testing.T, conn *websocket.Conn, text string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		t.Fatalf("send %q: %v", text, err)
	}
}

func readFrame(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(data)
}

func expectFrame(t *testing.T, conn *websocket.Conn, want string) {
	t.Helper()
	if got := readFrame(t, conn); got != want {
		t.Fatalf("frame = %q, want %q", got, want)
	}
}

// readUntil consumes frames until want arrives, tolerating interleaved
// frames such as history replay.
func readUntil(t *testing.T, conn *websocket.Conn, want string) {
	t.Helper()
	for i := 0; i < 50; i++ {
		if readFrame(t, conn) == want {
			return
		}
	}
	t.Fatalf("frame %q never arrived", want)
}

func TestRelayEndToEnd(t *testing.T) {
	addr, _ := startTestRelay(t)

	alice := dialRelay(t, addr)
	sendFrame(t, alice, "IDENTIFY:alice")
	expectFrame(t, alice, "Bot: Bem-vindo, alice!")

	// Simple greeting: relayed, then answered by the bot.
	sendFrame(t, alice, "Hello")
	expectFrame(t, alice, "alice: Hello")
	expectFrame(t, alice, "Bot: Olá, alice! Como posso ajudar?")

	// A second user joining notifies the first.
	bob := dialRelay(t, addr)
	sendFrame(t, bob, "IDENTIFY:bob")
	expectFrame(t, bob, "Bot: Bem-vindo, bob!")
	expectFrame(t, alice, "Bot: bob entrou no chat.")

	// Admin connects: private welcome, then history replay.
	admin := dialRelay(t, addr)
	sendFrame(t, admin, "IDENTIFY:ADMIN")
	expectFrame(t, admin, "Bot: Você está conectado como administrador.")

	// Complex message: forwarding notice to users, private escalation
	// to the admin.
	msg := "I have a problem and don't know how to configure the server, can someone explain?"
	sendFrame(t, alice, msg)
	expectFrame(t, alice, "alice: "+msg)
	expectFrame(t, alice, "Bot: alice, sua mensagem é complexa. Encaminhando ao administrador!")
	readUntil(t, admin, "Message from alice: "+msg)

	// Admin reply: broadcast to users only, no bot logic.
	sendFrame(t, admin, "Please hold")
	readUntil(t, bob, "Admin: Please hold")
	readUntil(t, alice, "Admin: Please hold")
}

func TestRelayEscalationFallbackWithoutAdmin(t *testing.T) {
	addr, _ := startTestRelay(t)

	alice := dialRelay(t, addr)
	sendFrame(t, alice, "IDENTIFY:alice")
	expectFrame(t, alice, "Bot: Bem-vindo, alice!")

	msg := "I need help with the server configuration, it does not accept my password at all"
	sendFrame(t, alice, msg)
	expectFrame(t, alice, "alice: "+msg)
	expectFrame(t, alice, "Bot: alice, sua mensagem é complexa. Encaminhando ao administrador!")
	expectFrame(t, alice, "Bot: Desculpe, alice, nenhum administrador disponível.")
}

func TestRelayPersistsMessages(t *testing.T) {
	addr, stores := startTestRelay(t)

	alice := dialRelay(t, addr)
	sendFrame(t, alice, "IDENTIFY:alice")
	expectFrame(t, alice, "Bot: Bem-vindo, alice!")

	sendFrame(t, alice, "tudo bem")
	expectFrame(t, alice, "alice: tudo bem")

	// Saves are asynchronous; poll briefly.
	deadline := time.Now().Add(3 * time.Second)
	for {
		history, err := stores.Messages.History(context.Background())
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		var found bool
		for _, m := range history {
			if m.Username == "alice" && m.Text == "tudo bem" && m.Sender == store.SenderUser {
				found = true
			}
		}
		if found {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("message never persisted; history = %+v", history)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestHealthAndTicketEndpoints(t *testing.T) {
	addr, _ := startTestRelay(t)
	base := "http://" + addr

	resp, err := http.Get(base + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	resp, err = http.Post(base+"/api/open-ticket", "application/json",
		strings.NewReader(`{"username":"alice","description":"sem acesso"}`))
	if err != nil {
		t.Fatalf("open ticket: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("open ticket status = %d", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != store.TicketStatusOpen {
		t.Errorf("ticket status = %q, want %q", body["status"], store.TicketStatusOpen)
	}

	resp, err = http.Get(fmt.Sprintf("%s/api/check-ticket/%d", base, 1))
	if err != nil {
		t.Fatalf("check ticket: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("check ticket status = %d", resp.StatusCode)
	}
}
