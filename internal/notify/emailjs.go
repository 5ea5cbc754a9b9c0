package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

const emailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSSender envia e-mails pela API REST do EmailJS.
type EmailJSSender struct {
	ServiceID         string
	PublicKey         string
	BookingTemplateID string
	StatusTemplateID  string
	ReminderTemplate  string

	client *http.Client
}

func NewEmailJSSender(serviceID, publicKey, bookingTpl, statusTpl, reminderTpl string) *EmailJSSender {
	return &EmailJSSender{
		ServiceID:         serviceID,
		PublicKey:         publicKey,
		BookingTemplateID: bookingTpl,
		StatusTemplateID:  statusTpl,
		ReminderTemplate:  reminderTpl,
		client:            &http.Client{Timeout: 10 * time.Second},
	}
}

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams map[string]any `json:"template_params"`
}

func (s *EmailJSSender) send(templateID string, params map[string]any) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.ServiceID,
		TemplateID:     templateID,
		UserID:         s.PublicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	resp, err := s.client.Post(emailJSEndpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("emailjs: status %d", resp.StatusCode)
	}
	return nil
}

func recipientName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func (s *EmailJSSender) SendBookingReceived(b *models.Booking) error {
	if b.ClientEmail == "" {
		return nil
	}
	return s.send(s.BookingTemplateID, map[string]any{
		"to_email":       b.ClientEmail,
		"to_name":        recipientName(b.ClientEmail),
		"booking_id":     shortID(b.ID),
		"pet_name":       b.PetName,
		"service":        b.ServiceName,
		"date_time":      b.StartTime.Format("02/01/2006 15:04"),
		"payment_method": b.PaymentMethod,
		"notes":          b.Notes,
	})
}

func (s *EmailJSSender) SendStatusChange(b *models.Booking, newStatus string) error {
	if b.ClientEmail == "" {
		return nil
	}
	return s.send(s.StatusTemplateID, map[string]any{
		"to_email":   b.ClientEmail,
		"to_name":    recipientName(b.ClientEmail),
		"booking_id": shortID(b.ID),
		"pet_name":   b.PetName,
		"service":    b.ServiceName,
		"date_time":  b.StartTime.Format("02/01/2006 15:04"),
		"status":     newStatus,
	})
}

func (s *EmailJSSender) SendReminder(b *models.Booking) error {
	if b.ClientEmail == "" {
		return nil
	}
	return s.send(s.ReminderTemplate, map[string]any{
		"to_email":       b.ClientEmail,
		"to_name":        recipientName(b.ClientEmail),
		"pet_name":       b.PetName,
		"service":        b.ServiceName,
		"date_time":      b.StartTime.Format("02/01/2006 15:04"),
		"reminder_hours": "24",
	})
}

// shortID é o código curto mostrado ao cliente (primeiros 8 chars do UUID)
func shortID(id string) string {
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
