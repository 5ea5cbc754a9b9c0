package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/stream"
)

func newAdminUC(repo *fakeRepo) *CreateAdminBooking {
	return NewCreateAdminBooking(
		repo,
		&fakeLocker{},
		notify.NewDispatcher(newRecordingSender()),
		stream.NewHub(),
		testAuditDispatcher(),
	)
}

func adminInput(date, hm string) CreateAdminBookingInput {
	return CreateAdminBookingInput{
		PetshopID:   1,
		UserID:      7,
		ClientName:  "Carlos Lima",
		ClientEmail: "carlos@example.com",
		ClientPhone: "11977776666",
		PetName:     "Mia",
		PetType:     "gato",
		ServiceID:   10,
		Date:        date,
		Time:        hm,
	}
}

func TestCreateAdminBookingFuture(t *testing.T) {
	repo := newFakeRepo()
	uc := newAdminUC(repo)

	b, err := uc.Execute(context.Background(), adminInput(futureDate(5), "11:00"))
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, string(domain.SourceAdmin), b.Source)
}

func TestCreateAdminBookingBackdated(t *testing.T) {
	repo := newFakeRepo()
	uc := newAdminUC(repo)

	past := time.Now().AddDate(0, 0, -3)
	b, err := uc.Execute(
		context.Background(),
		adminInput(past.Format("2006-01-02"), "11:00"),
	)
	require.NoError(t, err)

	// registro de histórico entra direto como confirmado
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)
}

func TestCreateAdminBookingBackdatedConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := newAdminUC(repo)

	past := time.Now().AddDate(0, 0, -3)
	_, err := uc.Execute(context.Background(), adminInput(past.Format("2006-01-02"), "11:00"))
	require.NoError(t, err)

	// retroativo pula antecedência, nunca o conflito
	in := adminInput(past.Format("2006-01-02"), "11:30")
	in.ClientEmail = "outro@example.com"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "time_conflict"), "got %v", err)
}

func TestCreateAdminBookingIgnoresQuota(t *testing.T) {
	repo := newFakeRepo()
	uc := newAdminUC(repo)

	// mês lotado para o fluxo público
	ref, _ := time.Parse("2006-01-02", futureDate(5))
	for i := 0; i < domain.FreePlanMonthlyLimit; i++ {
		repo.bookings = append(repo.bookings, &models.Booking{
			PetshopID: 1,
			Source:    string(domain.SourcePublic),
			Status:    string(domain.StatusCancelled),
			StartTime: ref,
			EndTime:   ref,
		})
	}

	_, err := uc.Execute(context.Background(), adminInput(futureDate(5), "11:00"))
	assert.NoError(t, err)
}
