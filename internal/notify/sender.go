package notify

import (
	"log"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

// Sender envia avisos por e-mail ao cliente. Toda chamada é best-effort:
// falha de envio nunca desfaz nem bloqueia a operação que a originou.
type Sender interface {
	SendBookingReceived(b *models.Booking) error
	SendStatusChange(b *models.Booking, newStatus string) error
	SendReminder(b *models.Booking) error
}

// LogSender é o fallback quando o provedor de e-mail não está configurado:
// apenas registra no log o que teria sido enviado.
type LogSender struct{}

func (LogSender) SendBookingReceived(b *models.Booking) error {
	log.Printf("notify (log only): agendamento recebido id=%s cliente=%s", b.ID, b.ClientEmail)
	return nil
}

func (LogSender) SendStatusChange(b *models.Booking, newStatus string) error {
	log.Printf("notify (log only): agendamento %s -> %s cliente=%s", b.ID, newStatus, b.ClientEmail)
	return nil
}

func (LogSender) SendReminder(b *models.Booking) error {
	log.Printf("notify (log only): lembrete id=%s cliente=%s horario=%s", b.ID, b.ClientEmail, b.StartTime)
	return nil
}
