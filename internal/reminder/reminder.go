package reminder

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	domain "github.com/BruksfildServices01/petgroom-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/petgroom-scheduler/internal/notify"
)

// Scheduler roda de hora em hora e dispara o lembrete dos agendamentos
// ativos que começam daqui a ~24h. A varredura cobre a janela
// [agora+24h, agora+25h); rodando a cada hora, cada agendamento cai em
// exatamente uma varredura.
type Scheduler struct {
	repo     domain.Repository
	notifier *notify.Dispatcher
	cron     *cron.Cron
}

func NewScheduler(repo domain.Repository, notifier *notify.Dispatcher) *Scheduler {
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	from := time.Now().Add(24 * time.Hour)
	to := from.Add(time.Hour)

	bookings, err := s.repo.ListActiveStartingBetween(ctx, from, to)
	if err != nil {
		log.Println("reminder sweep:", err)
		return
	}

	for i := range bookings {
		s.notifier.Reminder(&bookings[i])
	}

	if len(bookings) > 0 {
		log.Printf("reminder sweep: %d lembrete(s) enfileirado(s)", len(bookings))
	}
}
