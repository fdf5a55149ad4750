package notify

import (
	"context"
	"log/slog"
	"sync"
)

// User-facing messages, one per failure path.
const (
	MsgPostalCodeNotFound = "CEP não encontrado."
	MsgAddressLookupError = "Ocorreu um erro ao buscar o endereço."
	MsgAddressNotFound    = "Endereço não encontrado."
	MsgCoordinatesError   = "Ocorreu um erro ao buscar as coordenadas."
)

// Sink is a dismissible message surface.
type Sink interface {
	Show(ctx context.Context, message string)
	Hide(ctx context.Context)
}

// State is what the modal currently displays.
type State struct {
	Message string `json:"message"`
	Visible bool   `json:"visible"`
}

// Modal is an in-memory Sink backing a single modal dialog.
type Modal struct {
	mu    sync.RWMutex
	state State
	log   *slog.Logger
}

// NewModal returns a hidden, empty modal.
func NewModal(log *slog.Logger) *Modal {
	return &Modal{log: log}
}

// Show replaces the message and makes the modal visible.
func (m *Modal) Show(ctx context.Context, message string) {
	m.mu.Lock()
	m.state = State{Message: message, Visible: true}
	m.mu.Unlock()

	m.log.InfoContext(ctx, "Notification shown", "message", message)
}

// Hide makes the modal invisible and clears its message.
func (m *Modal) Hide(ctx context.Context) {
	m.mu.Lock()
	m.state = State{}
	m.mu.Unlock()

	m.log.DebugContext(ctx, "Notification hidden")
}

// Dismiss is the user's acknowledgement of the message.
func (m *Modal) Dismiss(ctx context.Context) {
	m.Hide(ctx)
}

// State returns a copy of what the modal displays.
func (m *Modal) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}
