package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute monta a grade de horários livres do dia para um serviço,
// dentro do expediente do petshop, pulando o que já está ocupado e o
// que cai dentro da antecedência mínima.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetPetshopByID(ctx, in.PetshopID)
	if err != nil {
		return nil, httperr.ErrBusiness("petshop_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.PetshopID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(shop.Timezone)

	parseHM := func(hm, fallback string) time.Time {
		t, err := time.Parse("15:04", hm)
		if err != nil {
			// Expediente mal configurado não pode zerar a grade do dia
			t, _ = time.Parse("15:04", fallback)
		}
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	dayStart := parseHM(shop.OpenTime, "09:00")
	dayEnd := parseHM(shop.CloseTime, "18:00")

	busy, err := uc.repo.ListActiveIntervals(ctx, shop.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	durationMin := svc.DurationMin
	if durationMin <= 0 {
		durationMin = domain.DefaultDurationMin
	}
	slotDuration := time.Duration(durationMin) * time.Minute

	// Horário mínimo reservável agora
	earliest := timezone.NowIn(shop.Timezone).
		Add(time.Duration(shop.MinLeadHours) * time.Hour)

	var slots []domain.TimeSlot

	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {

		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if slotStart.Before(earliest) {
			continue
		}

		conflict := false
		for _, iv := range busy {
			if domain.Overlaps(slotStart, slotEnd, iv.Start, iv.End) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
