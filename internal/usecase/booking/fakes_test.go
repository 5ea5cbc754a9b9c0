package booking

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
)

// fakeRepo guarda tudo em memória, espelhando o contrato do repositório
// gorm (inclusive a revalidação de conflito dentro de CreateBookingValidated).
type fakeRepo struct {
	mu sync.Mutex

	shop     *models.Petshop
	services map[uint]*models.GroomingService
	sub      *models.Subscription
	clients  []*models.Client
	bookings []*models.Booking

	nextClientID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		shop: &models.Petshop{
			ID:           1,
			Name:         "PetShop Amigo Fiel",
			Slug:         "amigo-fiel",
			Timezone:     "America/Sao_Paulo",
			MinLeadHours: 24,
			OpenTime:     "09:00",
			CloseTime:    "18:00",
		},
		services: map[uint]*models.GroomingService{
			10: {ID: 10, PetshopID: 1, Name: "Banho e Tosa", DurationMin: 90, Active: true},
		},
		nextClientID: 1,
	}
}

var _ domain.Repository = (*fakeRepo)(nil)

func (r *fakeRepo) GetPetshopByID(ctx context.Context, id uint) (*models.Petshop, error) {
	if r.shop == nil || r.shop.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.shop, nil
}

func (r *fakeRepo) GetPetshopBySlug(ctx context.Context, slug string) (*models.Petshop, error) {
	if r.shop == nil || r.shop.Slug != slug {
		return nil, gorm.ErrRecordNotFound
	}
	return r.shop, nil
}

func (r *fakeRepo) GetService(ctx context.Context, petshopID, serviceID uint) (*models.GroomingService, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.PetshopID != petshopID {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

func (r *fakeRepo) GetOrCreateClient(ctx context.Context, petshopID uint, name, email, phone string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.clients {
		if c.PetshopID == petshopID && c.Email == email {
			return c, nil
		}
	}

	c := &models.Client{
		ID:        r.nextClientID,
		PetshopID: petshopID,
		Name:      name,
		Email:     email,
		Phone:     phone,
	}
	r.nextClientID++
	r.clients = append(r.clients, c)
	return c, nil
}

func (r *fakeRepo) GetSubscription(ctx context.Context, petshopID uint) (*models.Subscription, error) {
	return r.sub, nil
}

func (r *fakeRepo) ListActiveIntervals(ctx context.Context, petshopID uint, from, to time.Time) ([]domain.BookedInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.BookedInterval
	for _, b := range r.bookings {
		if b.PetshopID != petshopID {
			continue
		}
		if b.Status != string(domain.StatusPending) && b.Status != string(domain.StatusConfirmed) {
			continue
		}
		if b.StartTime.Before(to) && b.EndTime.After(from) {
			out = append(out, domain.BookedInterval{Start: b.StartTime, End: b.EndTime})
		}
	}
	return out, nil
}

func (r *fakeRepo) CountBookingsInMonth(ctx context.Context, petshopID uint, ref time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if b.PetshopID != petshopID {
			continue
		}
		if b.StartTime.Year() == ref.Year() && b.StartTime.Month() == ref.Month() {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CreateBookingValidated(ctx context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.bookings {
		if other.PetshopID != b.PetshopID {
			continue
		}
		if other.Status != string(domain.StatusPending) && other.Status != string(domain.StatusConfirmed) {
			continue
		}
		if domain.Overlaps(b.StartTime, b.EndTime, other.StartTime, other.EndTime) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	r.bookings = append(r.bookings, b)
	return nil
}

func (r *fakeRepo) GetBookingForPetshop(ctx context.Context, bookingID string, petshopID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID == bookingID && b.PetshopID == petshopID {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	return nil // ponteiro compartilhado, nada a copiar
}

func (r *fakeRepo) ListBookingsForPeriod(ctx context.Context, petshopID uint, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.PetshopID == petshopID && !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListActiveStartingBetween(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, b := range r.bookings {
		if b.Status != string(domain.StatusPending) && b.Status != string(domain.StatusConfirmed) {
			continue
		}
		if !b.StartTime.Before(from) && b.StartTime.Before(to) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountForDay(ctx context.Context, petshopID uint, day time.Time) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.PetshopID == petshopID &&
			b.StartTime.Year() == day.Year() && b.StartTime.YearDay() == day.YearDay() {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CountByStatus(ctx context.Context, petshopID uint, status domain.Status) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.PetshopID == petshopID && b.Status == string(status) {
			count++
		}
	}
	return count, nil
}

// fakeLocker registra aquisições e nunca falha
type fakeLocker struct {
	mu       sync.Mutex
	acquired int
	released int
}

func (l *fakeLocker) Acquire(ctx context.Context, petshopID uint) (func(), error) {
	l.mu.Lock()
	l.acquired++
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		l.released++
		l.mu.Unlock()
	}, nil
}

// recordingSender entrega as notificações num canal para o teste esperar
type recordingSender struct {
	sent chan string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(chan string, 10)}
}

func (s *recordingSender) SendBookingReceived(b *models.Booking) error {
	s.sent <- "received:" + b.ID
	return nil
}

func (s *recordingSender) SendStatusChange(b *models.Booking, newStatus string) error {
	s.sent <- "status:" + newStatus
	return nil
}

func (s *recordingSender) SendReminder(b *models.Booking) error {
	s.sent <- "reminder:" + b.ID
	return nil
}

func (s *recordingSender) wait(timeout time.Duration) (string, bool) {
	select {
	case msg := <-s.sent:
		return msg, true
	case <-time.After(timeout):
		return "", false
	}
}

var _ notify.Sender = (*recordingSender)(nil)

// testAuditDispatcher descarta eventos (logger sem banco)
func testAuditDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil))
}
