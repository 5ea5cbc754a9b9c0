package booking

import (
	"context"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

type DashboardStats struct {
	Today     int64 `json:"today"`
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
}

type GetDashboardStats struct {
	repo domain.Repository
}

func NewGetDashboardStats(repo domain.Repository) *GetDashboardStats {
	return &GetDashboardStats{repo: repo}
}

func (uc *GetDashboardStats) Execute(
	ctx context.Context,
	petshopID uint,
) (*DashboardStats, error) {

	shop, err := uc.repo.GetPetshopByID(ctx, petshopID)
	if err != nil {
		return nil, err
	}

	today := timezone.NowIn(shop.Timezone)

	todayCount, err := uc.repo.CountForDay(ctx, petshopID, today)
	if err != nil {
		return nil, err
	}

	pending, err := uc.repo.CountByStatus(ctx, petshopID, domain.StatusPending)
	if err != nil {
		return nil, err
	}

	completed, err := uc.repo.CountByStatus(ctx, petshopID, domain.StatusCompleted)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Today:     todayCount,
		Pending:   pending,
		Completed: completed,
	}, nil
}
