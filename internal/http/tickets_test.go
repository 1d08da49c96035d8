package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Abdulai258/aula/internal/store"
	"github.com/Abdulai258/aula/internal/store/memory"
)

func newTestMux(t *testing.T) (*http.ServeMux, *store.Stores) {
	t.Helper()
	stores := memory.NewStores()
	mux := http.NewServeMux()
	NewTicketsHandler(stores.Tickets).RegisterRoutes(mux)
	return mux, stores
}

func TestOpenTicket(t *testing.T) {
	mux, stores := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/api/open-ticket",
		strings.NewReader(`{"username":"alice","description":"sem acesso ao sistema"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Chamado aberto com sucesso!" || resp["status"] != store.TicketStatusOpen {
		t.Errorf("response = %v", resp)
	}

	tickets, err := stores.Tickets.List(req.Context())
	if err != nil || len(tickets) != 1 {
		t.Fatalf("tickets = %v, err = %v", tickets, err)
	}
	if tickets[0].Username != "alice" {
		t.Errorf("stored ticket = %+v", tickets[0])
	}
}

func TestOpenTicketRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing username", `{"description":"x"}`},
		{"missing description", `{"username":"alice"}`},
		{"blank fields", `{"username":"  ","description":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, _ := newTestMux(t)
			req := httptest.NewRequest(http.MethodPost, "/api/open-ticket", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestCheckTicket(t *testing.T) {
	mux, stores := newTestMux(t)
	created, err := stores.Tickets.Create(t.Context(), "alice", "impressora quebrada")
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/check-ticket/1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != created.Status {
		t.Errorf("status = %q, want %q", resp["status"], created.Status)
	}
}

func TestCheckTicketNotFound(t *testing.T) {
	for _, path := range []string{"/api/check-ticket/42", "/api/check-ticket/abc"} {
		mux, _ := newTestMux(t)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, rec.Code)
		}
	}
}

func TestListTickets(t *testing.T) {
	mux, stores := newTestMux(t)

	// Empty list must encode as [], not null.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tickets", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("empty list body = %q, want []", got)
	}

	stores.Tickets.Create(t.Context(), "alice", "primeiro")
	stores.Tickets.Create(t.Context(), "bob", "segundo")

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tickets", nil))

	var tickets []store.Ticket
	if err := json.Unmarshal(rec.Body.Bytes(), &tickets); err != nil {
		t.Fatal(err)
	}
	if len(tickets) != 2 || tickets[0].Username != "alice" || tickets[1].Username != "bob" {
		t.Errorf("tickets = %+v", tickets)
	}
}
