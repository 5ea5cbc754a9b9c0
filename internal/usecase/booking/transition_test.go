package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
)

func seedBooking(repo *fakeRepo, status domain.Status) *models.Booking {
	b := &models.Booking{
		ID:          "11111111-2222-3333-4444-555555555555",
		PetshopID:   1,
		ClientEmail: "marina@example.com",
		PetName:     "Thor",
		ServiceName: "Banho e Tosa",
		StartTime:   time.Now().Add(48 * time.Hour),
		EndTime:     time.Now().Add(48*time.Hour + 90*time.Minute),
		DurationMin: 90,
		Status:      string(status),
		Source:      string(domain.SourcePublic),
	}
	repo.bookings = append(repo.bookings, b)
	return b
}

func newTransitionUC(repo *fakeRepo, sender *recordingSender) (*TransitionBooking, *stream.Hub) {
	hub := stream.NewHub()
	uc := NewTransitionBooking(
		repo,
		notify.NewDispatcher(sender),
		hub,
		testAuditDispatcher(),
	)
	return uc, hub
}

func TestTransitionConfirmNotifies(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedBooking(repo, domain.StatusPending)
	sender := newRecordingSender()
	uc, hub := newTransitionUC(repo, sender)

	sub := hub.Subscribe(1)
	defer sub.Cancel()

	b, err := uc.Execute(context.Background(), TransitionBookingInput{
		PetshopID: 1,
		UserID:    7,
		BookingID: seeded.ID,
		Target:    domain.StatusConfirmed,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)

	msg, ok := sender.wait(2 * time.Second)
	require.True(t, ok)
	assert.Equal(t, "status:confirmed", msg)

	select {
	case ev := <-sub.C:
		assert.Equal(t, stream.EventBookingUpdated, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("evento não publicado no hub")
	}
}

func TestTransitionCancelIsSilent(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedBooking(repo, domain.StatusPending)
	sender := newRecordingSender()
	uc, _ := newTransitionUC(repo, sender)

	b, err := uc.Execute(context.Background(), TransitionBookingInput{
		PetshopID: 1,
		UserID:    7,
		BookingID: seeded.ID,
		Target:    domain.StatusCancelled,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)

	// cancelamento não manda e-mail
	if msg, ok := sender.wait(300 * time.Millisecond); ok {
		t.Fatalf("notificação inesperada: %s", msg)
	}
}

func TestTransitionTerminalRejected(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedBooking(repo, domain.StatusCompleted)
	uc, _ := newTransitionUC(repo, newRecordingSender())

	_, err := uc.Execute(context.Background(), TransitionBookingInput{
		PetshopID: 1,
		UserID:    7,
		BookingID: seeded.ID,
		Target:    domain.StatusCancelled,
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"), "got %v", err)
}

func TestTransitionWrongTenant(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedBooking(repo, domain.StatusPending)
	uc, _ := newTransitionUC(repo, newRecordingSender())

	_, err := uc.Execute(context.Background(), TransitionBookingInput{
		PetshopID: 99,
		UserID:    7,
		BookingID: seeded.ID,
		Target:    domain.StatusConfirmed,
	})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestTransitionFullLifecycle(t *testing.T) {
	repo := newFakeRepo()
	seeded := seedBooking(repo, domain.StatusPending)
	sender := newRecordingSender()
	uc, _ := newTransitionUC(repo, sender)

	for _, target := range []domain.Status{domain.StatusConfirmed, domain.StatusCompleted} {
		_, err := uc.Execute(context.Background(), TransitionBookingInput{
			PetshopID: 1,
			UserID:    7,
			BookingID: seeded.ID,
			Target:    target,
		})
		require.NoError(t, err, "transição para %s", target)
	}

	assert.Equal(t, string(domain.StatusCompleted), seeded.Status)
	assert.NotNil(t, seeded.ConfirmedAt)
	assert.NotNil(t, seeded.CompletedAt)
}
