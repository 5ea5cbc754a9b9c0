package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Booking struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	PetshopID uint    `gorm:"index" json:"petshop_id"`
	Petshop   Petshop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"petshop"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	// Dados do cliente desnormalizados (histórico não muda se o cadastro mudar)
	ClientName  string `gorm:"size:100" json:"client_name"`
	ClientEmail string `gorm:"size:100" json:"client_email"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`

	PetName  string `gorm:"size:100" json:"pet_name"`
	PetType  string `gorm:"size:50" json:"pet_type"`
	PetBreed string `gorm:"size:100" json:"pet_breed"`

	ServiceID       uint            `json:"service_id"`
	GroomingService GroomingService `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"grooming_service"`
	ServiceName     string          `gorm:"size:100" json:"service_name"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	// Duração congelada no momento da criação; mudanças no catálogo
	// não reinterpretam agendamentos antigos.
	DurationMin int       `json:"duration_min"`
	EndTime     time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Source string `gorm:"size:20;default:'public'" json:"source"`

	PaymentMethod string          `gorm:"size:20;default:'presencial'" json:"payment_method"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2)" json:"price"`

	Notes string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
