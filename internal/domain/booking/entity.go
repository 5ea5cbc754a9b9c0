package booking

import (
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica uma transição de status ao agendamento, carimbando
// os timestamps do ciclo de vida. Não persiste nada.
func Transition(b *models.Booking, to Status, actor Actor, now time.Time) error {
	if err := ValidateTransition(Status(b.Status), to, actor); err != nil {
		return err
	}

	b.Status = string(to)
	b.UpdatedAt = now

	switch to {
	case StatusConfirmed:
		b.ConfirmedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	case StatusCancelled:
		b.CancelledAt = &now
	}

	return nil
}

func Confirm(b *models.Booking, actor Actor, now time.Time) error {
	return Transition(b, StatusConfirmed, actor, now)
}

func Complete(b *models.Booking, actor Actor, now time.Time) error {
	return Transition(b, StatusCompleted, actor, now)
}

func Cancel(b *models.Booking, actor Actor, now time.Time) error {
	return Transition(b, StatusCancelled, actor, now)
}
