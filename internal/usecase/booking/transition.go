package booking

import (
	"context"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

// TransitionBooking aplica uma mudança de status (confirmar, concluir,
// cancelar) carregando o agendamento do petshop autenticado e delegando
// a regra de transição ao domínio. Estado terminal nunca sai do lugar.
type TransitionBooking struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	hub      *stream.Hub
	audit    *audit.Dispatcher
}

func NewTransitionBooking(
	repo domain.Repository,
	notifier *notify.Dispatcher,
	hub *stream.Hub,
	auditDispatcher *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:     repo,
		notifier: notifier,
		hub:      hub,
		audit:    auditDispatcher,
	}
}

type TransitionBookingInput struct {
	PetshopID uint
	UserID    uint
	BookingID string
	Target    domain.Status
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBookingForPetshop(ctx, in.BookingID, in.PetshopID)
	if err != nil {
		return nil, err
	}

	shop, err := uc.repo.GetPetshopByID(ctx, in.PetshopID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Transition(b, in.Target, domain.ActorAdmin, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: in.PetshopID,
		UserID:    &in.UserID,
		Action:    "booking_" + string(in.Target),
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	if domain.NotifiesOn(in.Target) {
		uc.notifier.StatusChanged(b, string(in.Target))
	}

	uc.hub.Publish(stream.Event{
		Type:      stream.EventBookingUpdated,
		PetshopID: in.PetshopID,
		Booking:   *b,
	})

	return b, nil
}
