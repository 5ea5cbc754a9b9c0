package booking

import "github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Source string

const (
	SourcePublic Source = "public"
	SourceAdmin  Source = "admin"
)

// Formas de pagamento registradas no agendamento. Cobrança online fica
// fora do núcleo: o campo é apenas um rótulo informativo.
const (
	PaymentOnSite = "presencial"
	PaymentOnline = "online"
)

type Actor string

const (
	ActorPublic Actor = "public"
	ActorAdmin  Actor = "admin"
)

// Estados terminais: nenhuma transição sai deles
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ActiveStatuses são os status não terminais, os únicos que contam na
// detecção de conflito de horário
var ActiveStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
}

// ===============================
// Transições
// ===============================

// CanTransition define a matriz de transições do ciclo de vida.
// pending  -> confirmed | completed | cancelled
// confirmed -> completed | cancelled
// completed / cancelled -> nada
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCompleted || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// ValidateTransition retorna erro de negócio quando a transição não é permitida.
// Transição inválida é erro de uso da API, nunca um no-op silencioso.
func ValidateTransition(from, to Status, actor Actor) error {
	if actor != ActorAdmin {
		return httperr.ErrBusiness("forbidden_actor")
	}
	if !to.IsValid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if !CanTransition(from, to) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// NotifiesOn indica se a entrada no estado dispara notificação ao cliente
func NotifiesOn(to Status) bool {
	return to == StatusConfirmed || to == StatusCompleted
}

// InitialStatus centraliza o status de criação: agendamento público sempre
// nasce pending; admin retroagindo a data cria já confirmado.
func InitialStatus(source Source, backdated bool) Status {
	if source == SourceAdmin && backdated {
		return StatusConfirmed
	}
	return StatusPending
}
