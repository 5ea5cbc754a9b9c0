package notify

import (
	"log"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

type kind int

const (
	kindBookingReceived kind = iota
	kindStatusChange
	kindReminder
)

type message struct {
	kind      kind
	booking   models.Booking // cópia, o worker roda em outra goroutine
	newStatus string
}

// Dispatcher desacopla o envio de e-mail do caminho da requisição.
// Fila com buffer + worker; fila cheia descarta (notificação é aviso,
// nunca pode derrubar a API).
type Dispatcher struct {
	sender Sender
	queue  chan message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan message, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		var err error
		switch msg.kind {
		case kindBookingReceived:
			err = d.sender.SendBookingReceived(&msg.booking)
		case kindStatusChange:
			err = d.sender.SendStatusChange(&msg.booking, msg.newStatus)
		case kindReminder:
			err = d.sender.SendReminder(&msg.booking)
		}
		if err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) enqueue(msg message) {
	select {
	case d.queue <- msg:
	default:
		log.Println("notify queue full, dropping message")
	}
}

func (d *Dispatcher) BookingReceived(b *models.Booking) {
	d.enqueue(message{kind: kindBookingReceived, booking: *b})
}

func (d *Dispatcher) StatusChanged(b *models.Booking, newStatus string) {
	d.enqueue(message{kind: kindStatusChange, booking: *b, newStatus: newStatus})
}

func (d *Dispatcher) Reminder(b *models.Booking) {
	d.enqueue(message{kind: kindReminder, booking: *b})
}
