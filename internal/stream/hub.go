package stream

import (
	"log"
	"sync"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

type EventType string

const (
	EventBookingCreated EventType = "booking_created"
	EventBookingUpdated EventType = "booking_updated"
)

// Event é o snapshot enviado aos painéis conectados do petshop
type Event struct {
	Type      EventType      `json:"type"`
	PetshopID uint           `json:"petshop_id"`
	Booking   models.Booking `json:"booking"`
}

// Subscription é uma inscrição cancelável no feed de um petshop.
// Cancel é idempotente e obrigatório no teardown da conexão.
type Subscription struct {
	C      chan Event
	hub    *Hub
	shopID uint
	once   sync.Once
}

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.C)
	})
}

// Hub distribui eventos de agendamento por petshop. Substitui os
// listeners em tempo real do painel: cada conexão assina o feed do
// próprio tenant e recebe os snapshots conforme acontecem.
type Hub struct {
	mu   sync.RWMutex
	subs map[uint]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint]map[*Subscription]struct{}),
	}
}

func (h *Hub) Subscribe(petshopID uint) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, 16),
		hub:    h,
		shopID: petshopID,
	}

	h.mu.Lock()
	if h.subs[petshopID] == nil {
		h.subs[petshopID] = make(map[*Subscription]struct{})
	}
	h.subs[petshopID][sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[sub.shopID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, sub.shopID)
		}
	}
}

// Publish entrega o evento a todos os inscritos do petshop.
// Inscrito lento não trava os demais: buffer cheio descarta o evento.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[ev.PetshopID] {
		select {
		case sub.C <- ev:
		default:
			log.Printf("stream: inscrito lento no petshop %d, evento descartado", ev.PetshopID)
		}
	}
}

// SubscriberCount é usado em métricas de debug e nos testes
func (h *Hub) SubscriberCount(petshopID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[petshopID])
}
