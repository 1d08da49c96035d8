// Package http holds the plain request/response API surface: support
// tickets. It shares the process with the relay but has no part in the
// routing state machine.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdulai258/aula/internal/store"
)

// TicketsHandler serves the support ticket endpoints.
type TicketsHandler struct {
	tickets store.TicketStore
}

func NewTicketsHandler(tickets store.TicketStore) *TicketsHandler {
	return &TicketsHandler{tickets: tickets}
}

// RegisterRoutes registers the ticket routes on the given mux.
func (h *TicketsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/open-ticket", h.handleOpen)
	mux.HandleFunc("GET /api/check-ticket/{id}", h.handleCheck)
	mux.HandleFunc("GET /api/tickets", h.handleList)
}

type openTicketRequest struct {
	Username    string `json:"username"`
	Description string `json:"description"`
}

func (h *TicketsHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	var req openTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Description) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and description are required"})
		return
	}

	t, err := h.tickets.Create(r.Context(), req.Username, req.Description)
	if err != nil {
		slog.Error("open ticket failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao abrir o chamado"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Chamado aberto com sucesso!",
		"status":  t.Status,
	})
}

func (h *TicketsHandler) handleCheck(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Chamado não encontrado"})
		return
	}

	status, err := h.tickets.Status(r.Context(), id)
	if err != nil {
		// Lookup miss and store failure both surface as not found,
		// matching the original API contract.
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Chamado não encontrado"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (h *TicketsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.tickets.List(r.Context())
	if err != nil {
		slog.Error("list tickets failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Erro ao carregar chamados"})
		return
	}
	if tickets == nil {
		tickets = []store.Ticket{}
	}
	writeJSON(w, http.StatusOK, tickets)
}
