package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

type Repository interface {
	// -------- Petshop --------
	GetPetshopByID(
		ctx context.Context,
		id uint,
	) (*models.Petshop, error)

	GetPetshopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Petshop, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		petshopID uint,
		serviceID uint,
	) (*models.GroomingService, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		petshopID uint,
		name string,
		email string,
		phone string,
	) (*models.Client, error)

	// -------- Subscription --------
	// Retorna (nil, nil) quando o petshop não tem assinatura
	GetSubscription(
		ctx context.Context,
		petshopID uint,
	) (*models.Subscription, error)

	// -------- Booking (create / conflict) --------
	// Intervalos de agendamentos ativos (pending/confirmed) do petshop
	// que cruzam a janela [from, to)
	ListActiveIntervals(
		ctx context.Context,
		petshopID uint,
		from time.Time,
		to time.Time,
	) ([]BookedInterval, error)

	// Conta agendamentos do mês-calendário de ref, qualquer origem e
	// qualquer status (cancelados inclusive)
	CountBookingsInMonth(
		ctx context.Context,
		petshopID uint,
		ref time.Time,
	) (int, error)

	// Insere revalidando conflito de horário na mesma transação
	CreateBookingValidated(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingForPetshop(
		ctx context.Context,
		bookingID string,
		petshopID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listagens --------
	ListBookingsForPeriod(
		ctx context.Context,
		petshopID uint,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// Agendamentos ativos de qualquer petshop iniciando em [from, to),
	// usado pelo job de lembretes
	ListActiveStartingBetween(
		ctx context.Context,
		from time.Time,
		to time.Time,
	) ([]models.Booking, error)

	// -------- Dashboard --------
	CountForDay(
		ctx context.Context,
		petshopID uint,
		day time.Time,
	) (int64, error)

	CountByStatus(
		ctx context.Context,
		petshopID uint,
		status Status,
	) (int64, error)
}
