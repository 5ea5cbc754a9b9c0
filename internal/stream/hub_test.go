package stream

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

func recv(t *testing.T, c chan Event) Event {
	t.Helper()
	select {
	case ev := <-c:
		return ev
	case <-time.After(time.Second):
		t.Fatal("evento não chegou")
		return Event{}
	}
}

func TestHubDeliversToTenantOnly(t *testing.T) {
	h := NewHub()

	subA := h.Subscribe(1)
	subB := h.Subscribe(2)
	defer subA.Cancel()
	defer subB.Cancel()

	h.Publish(Event{
		Type:      EventBookingCreated,
		PetshopID: 1,
		Booking:   models.Booking{ID: "abc"},
	})

	ev := recv(t, subA.C)
	if ev.Booking.ID != "abc" {
		t.Fatalf("booking id = %s", ev.Booking.ID)
	}

	select {
	case ev := <-subB.C:
		t.Fatalf("evento vazou para outro petshop: %+v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubFanOut(t *testing.T) {
	h := NewHub()

	subs := []*Subscription{h.Subscribe(1), h.Subscribe(1), h.Subscribe(1)}
	defer func() {
		for _, s := range subs {
			s.Cancel()
		}
	}()

	h.Publish(Event{Type: EventBookingUpdated, PetshopID: 1})

	for i, s := range subs {
		ev := recv(t, s.C)
		if ev.Type != EventBookingUpdated {
			t.Fatalf("assinante %d recebeu %s", i, ev.Type)
		}
	}
}

func TestHubCancelIsIdempotent(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe(1)
	sub.Cancel()
	sub.Cancel() // segunda chamada não pode entrar em pânico

	if n := h.SubscriberCount(1); n != 0 {
		t.Fatalf("SubscriberCount = %d, want 0", n)
	}

	// publicar sem assinantes é inofensivo
	h.Publish(Event{Type: EventBookingCreated, PetshopID: 1})
}

func TestHubDropsWhenSubscriberIsSlow(t *testing.T) {
	h := NewHub()

	sub := h.Subscribe(1)
	defer sub.Cancel()

	// estoura o buffer sem consumidor; Publish não pode bloquear
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.Publish(Event{Type: EventBookingCreated, PetshopID: 1})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish bloqueou com assinante lento")
	}
}
