package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/timezone"
)

func TestGetAvailability(t *testing.T) {
	repo := newFakeRepo()
	repo.services[20] = &models.GroomingService{
		ID: 20, PetshopID: 1, Name: "Banho Simples", DurationMin: 60, Active: true,
	}

	loc := timezone.Location(repo.shop.Timezone)
	day := time.Now().In(loc).AddDate(0, 0, 10)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	// 10:00 - 11:00 ocupado
	repo.bookings = append(repo.bookings, &models.Booking{
		PetshopID: 1,
		Status:    string(domain.StatusConfirmed),
		StartTime: dayStart.Add(10 * time.Hour),
		EndTime:   dayStart.Add(11 * time.Hour),
	})

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 20,
		Date:      dayStart,
	})
	require.NoError(t, err)

	// expediente 09:00-18:00, passo de 60min, um horário tomado
	require.Len(t, slots, 8)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "11:00", slots[1].Start, "10:00 ocupado deve sumir da grade")
	assert.Equal(t, "17:00", slots[len(slots)-1].Start)
}

// Expediente corrompido no cadastro não pode devolver grade vazia: o
// cálculo cai para a janela padrão 09:00-18:00.
func TestGetAvailabilityBadOpeningHoursFallsBack(t *testing.T) {
	repo := newFakeRepo()
	repo.shop.OpenTime = "9am"
	repo.shop.CloseTime = ""
	repo.services[20] = &models.GroomingService{
		ID: 20, PetshopID: 1, Name: "Banho Simples", DurationMin: 60, Active: true,
	}

	loc := timezone.Location(repo.shop.Timezone)
	day := time.Now().In(loc).AddDate(0, 0, 10)
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 20,
		Date:      dayStart,
	})
	require.NoError(t, err)
	require.Len(t, slots, 9)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "17:00", slots[len(slots)-1].Start)
}

func TestGetAvailabilityRespectsLeadTime(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailability(repo)

	loc := timezone.Location(repo.shop.Timezone)
	today := time.Now().In(loc)
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	// hoje inteiro está dentro das 24h de antecedência
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		PetshopID: 1,
		ServiceID: 10,
		Date:      dayStart,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}
