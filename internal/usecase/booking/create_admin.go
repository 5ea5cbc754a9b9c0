package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/lock"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAdminBookingInput struct {
	PetshopID uint
	UserID    uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	PetName  string
	PetType  string
	PetBreed string

	ServiceID uint

	Date  string
	Time  string
	Notes string

	// Preço manual; nil usa o preço do catálogo
	Price *decimal.Decimal
}

// ======================================================
// USE CASE
// ======================================================

// CreateAdminBooking cria agendamento pela equipe do petshop.
// Data retroativa é permitida (registro de histórico) e entra direto
// como confirmed, pulando as checagens de futuro e antecedência.
// Conflito de horário vale sempre. Cota mensal nunca se aplica aqui.
type CreateAdminBooking struct {
	repo     domain.Repository
	locker   lock.Locker
	notifier *notify.Dispatcher
	hub      *stream.Hub
	audit    *audit.Dispatcher
}

func NewCreateAdminBooking(
	repo domain.Repository,
	locker lock.Locker,
	notifier *notify.Dispatcher,
	hub *stream.Hub,
	auditDispatcher *audit.Dispatcher,
) *CreateAdminBooking {
	return &CreateAdminBooking{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		hub:      hub,
		audit:    auditDispatcher,
	}
}

func (uc *CreateAdminBooking) Execute(
	ctx context.Context,
	in CreateAdminBookingInput,
) (*models.Booking, error) {

	shop, err := uc.repo.GetPetshopByID(ctx, in.PetshopID)
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := timezone.NowIn(shop.Timezone)
	backdated := !start.After(now)

	svc, err := uc.repo.GetService(ctx, in.PetshopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	durationMin := svc.DurationMin
	if durationMin <= 0 {
		durationMin = domain.DefaultDurationMin
	}
	end := start.Add(time.Duration(durationMin) * time.Minute)

	release, err := uc.locker.Acquire(ctx, shop.ID)
	if err != nil {
		log.Println("booking lock indisponível, seguindo só com transação:", err)
		release = func() {}
	}
	defer release()

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := uc.repo.ListActiveIntervals(ctx, shop.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	if backdated {
		// Só o conflito de horário importa para registro retroativo
		for _, iv := range existing {
			if domain.Overlaps(start, end, iv.Start, iv.End) {
				return nil, httperr.ErrBusiness("time_conflict")
			}
		}
	} else {
		if err := domain.ValidateSlot(domain.ValidateSlotInput{
			Start:    start,
			Now:      now,
			LeadTime: time.Duration(shop.MinLeadHours) * time.Hour,
			Duration: time.Duration(durationMin) * time.Minute,
			Existing: existing,
		}); err != nil {
			return nil, err
		}
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		shop.ID,
		in.ClientName,
		in.ClientEmail,
		in.ClientPhone,
	)
	if err != nil {
		return nil, err
	}

	price := svc.Price
	if in.Price != nil {
		price = *in.Price
	}

	b := &models.Booking{
		ID:            uuid.NewString(),
		PetshopID:     shop.ID,
		ClientID:      client.ID,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientPhone:   in.ClientPhone,
		PetName:       in.PetName,
		PetType:       in.PetType,
		PetBreed:      in.PetBreed,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		StartTime:     start,
		DurationMin:   durationMin,
		EndTime:       end,
		Status:        string(domain.InitialStatus(domain.SourceAdmin, backdated)),
		Source:        string(domain.SourceAdmin),
		PaymentMethod: domain.PaymentOnSite,
		Price:         price,
		Notes:         in.Notes,
	}

	if backdated {
		b.ConfirmedAt = &now
	}

	if err := uc.repo.CreateBookingValidated(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PetshopID: shop.ID,
		UserID:    &in.UserID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	uc.hub.Publish(stream.Event{
		Type:      stream.EventBookingCreated,
		PetshopID: shop.ID,
		Booking:   *b,
	})

	return b, nil
}
