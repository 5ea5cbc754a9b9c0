package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Petshop
// --------------------------------------------------

func (r *BookingGormRepository) GetPetshopByID(
	ctx context.Context,
	id uint,
) (*models.Petshop, error) {

	var shop models.Petshop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetPetshopBySlug(
	ctx context.Context,
	slug string,
) (*models.Petshop, error) {

	var shop models.Petshop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	petshopID uint,
	serviceID uint,
) (*models.GroomingService, error) {

	var svc models.GroomingService
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", serviceID, petshopID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

// GetOrCreateClient localiza o cliente pelo e-mail (quando informado) e
// atualiza o cadastro; sem e-mail, cria sempre um registro novo.
func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	petshopID uint,
	name string,
	email string,
	phone string,
) (*models.Client, error) {

	if email != "" {
		var client models.Client
		err := r.db.WithContext(ctx).
			Where("petshop_id = ? AND email = ?", petshopID, email).
			First(&client).Error

		if err == nil {
			client.Name = name
			if phone != "" {
				client.Phone = phone
			}
			if err := r.db.WithContext(ctx).Save(&client).Error; err != nil {
				return nil, err
			}
			return &client, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	client := models.Client{
		PetshopID: petshopID,
		Name:      name,
		Email:     email,
		Phone:     phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Subscription
// --------------------------------------------------

func (r *BookingGormRepository) GetSubscription(
	ctx context.Context,
	petshopID uint,
) (*models.Subscription, error) {

	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Where("petshop_id = ?", petshopID).
		First(&sub).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveIntervals(
	ctx context.Context,
	petshopID uint,
	from time.Time,
	to time.Time,
) ([]domain.BookedInterval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time", "duration_min").
		Where(
			"petshop_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			petshopID, domain.ActiveStatuses, to, from,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.BookedInterval, 0, len(rows))
	for _, b := range rows {
		end := b.EndTime
		if end.IsZero() {
			// registro antigo sem end_time gravado
			end = b.StartTime.Add(time.Duration(domain.FootprintMinutes(b.DurationMin, 0)) * time.Minute)
		}
		out = append(out, domain.BookedInterval{Start: b.StartTime, End: end})
	}

	return out, nil
}

func (r *BookingGormRepository) CountBookingsInMonth(
	ctx context.Context,
	petshopID uint,
	ref time.Time,
) (int, error) {

	monthStart := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"petshop_id = ? AND start_time >= ? AND start_time < ?",
			petshopID, monthStart, monthEnd,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// CreateBookingValidated insere o agendamento revalidando o conflito de
// horário na mesma transação, com lock das linhas concorrentes. Fecha a
// janela entre o validateSlot e o insert.
func (r *BookingGormRepository) CreateBookingValidated(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conflicting []models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				"petshop_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
				b.PetshopID, domain.ActiveStatuses, b.EndTime, b.StartTime,
			).
			Find(&conflicting).Error; err != nil {
			return err
		}

		if len(conflicting) > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForPetshop(
	ctx context.Context,
	bookingID string,
	petshopID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND petshop_id = ?", bookingID, petshopID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listagens
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	petshopID uint,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("GroomingService").
		Where(
			"petshop_id = ? AND start_time >= ? AND start_time < ?",
			petshopID, from, to,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListActiveStartingBetween(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Where(
			"status IN ? AND start_time >= ? AND start_time < ?",
			domain.ActiveStatuses, from, to,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Dashboard
// --------------------------------------------------

func (r *BookingGormRepository) CountForDay(
	ctx context.Context,
	petshopID uint,
	day time.Time,
) (int64, error) {

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"petshop_id = ? AND start_time >= ? AND start_time < ?",
			petshopID, start, end,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *BookingGormRepository) CountByStatus(
	ctx context.Context,
	petshopID uint,
	status domain.Status,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("petshop_id = ? AND status = ?", petshopID, string(status)).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
