package booking

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/lock"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreatePublicBookingInput struct {
	Slug string

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
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicBooking struct {
	repo     domain.Repository
	locker   lock.Locker
	notifier *notify.Dispatcher
	hub      *stream.Hub
	audit    *audit.Dispatcher
}

func NewCreatePublicBooking(
	repo domain.Repository,
	locker lock.Locker,
	notifier *notify.Dispatcher,
	hub *stream.Hub,
	auditDispatcher *audit.Dispatcher,
) *CreatePublicBooking {
	return &CreatePublicBooking{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		hub:      hub,
		audit:    auditDispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePublicBooking) Execute(
	ctx context.Context,
	in CreatePublicBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1️⃣ Petshop
	// --------------------------------------------------
	shop, err := uc.repo.GetPetshopBySlug(ctx, in.Slug)
	if err != nil {
		return nil, httperr.ErrBusiness("petshop_not_found")
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone do petshop
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	if in.ClientEmail != "" && !validators.IsValidEmail(in.ClientEmail) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	now := timezone.NowIn(shop.Timezone)

	// --------------------------------------------------
	// 3️⃣ Cota mensal (plano free)
	// --------------------------------------------------
	sub, err := uc.repo.GetSubscription(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	if domain.QuotaApplies(sub) {
		used, err := uc.repo.CountBookingsInMonth(ctx, shop.ID, start)
		if err != nil {
			return nil, err
		}
		if err := domain.CheckQuota(sub, used); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4️⃣ Serviço (duração e preço congelados na criação)
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	durationMin := svc.DurationMin
	if durationMin <= 0 {
		durationMin = domain.DefaultDurationMin
	}
	end := start.Add(time.Duration(durationMin) * time.Minute)

	// --------------------------------------------------
	// 5️⃣ Lock por petshop + validação do slot
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, shop.ID)
	if err != nil {
		// Redis fora do ar: a revalidação transacional do insert
		// continua protegendo contra corrida
		log.Println("booking lock indisponível, seguindo só com transação:", err)
		release = func() {}
	}
	defer release()

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	existing, err := uc.repo.ListActiveIntervals(ctx, shop.ID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateSlot(domain.ValidateSlotInput{
		Start:    start,
		Now:      now,
		LeadTime: time.Duration(shop.MinLeadHours) * time.Hour,
		Duration: time.Duration(durationMin) * time.Minute,
		Existing: existing,
	}); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ Cliente (get or create por e-mail)
	// --------------------------------------------------
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

	// --------------------------------------------------
	// 7️⃣ Criação (revalida conflito dentro da transação)
	// --------------------------------------------------
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
		Status:        string(domain.InitialStatus(domain.SourcePublic, false)),
		Source:        string(domain.SourcePublic),
		PaymentMethod: domain.PaymentOnSite,
		Price:         svc.Price,
		Notes:         in.Notes,
	}

	if err := uc.repo.CreateBookingValidated(ctx, b); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8️⃣ Efeitos colaterais (nunca desfazem a criação)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		PetshopID: shop.ID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	uc.notifier.BookingReceived(b)

	uc.hub.Publish(stream.Event{
		Type:      stream.EventBookingCreated,
		PetshopID: shop.ID,
		Booking:   *b,
	})

	return b, nil
}
