package booking

import (
	"time"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/httperr"
)

const (
	// Antecedência mínima padrão para agendamento público
	DefaultLeadTime = 24 * time.Hour

	// Duração usada quando o serviço não existe mais no catálogo
	DefaultDurationMin = 60
)

// BookedInterval é o intervalo [Start, End) ocupado por um agendamento ativo
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

type ValidateSlotInput struct {
	Start    time.Time
	Now      time.Time
	LeadTime time.Duration // <= 0 usa DefaultLeadTime
	Duration time.Duration
	Existing []BookedInterval
}

// Overlaps testa interseção de intervalos semiabertos [aStart, aEnd) e
// [bStart, bEnd). Desigualdade estrita nas duas pontas: agendamentos
// encostados (fim == início) nunca conflitam.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// FootprintMinutes resolve a duração efetiva de um agendamento gravado:
// snapshot congelado na criação; registros antigos sem snapshot caem na
// duração do catálogo e, por fim, no padrão de 60 minutos.
func FootprintMinutes(snapshotMin, catalogMin int) int {
	if snapshotMin > 0 {
		return snapshotMin
	}
	if catalogMin > 0 {
		return catalogMin
	}
	return DefaultDurationMin
}

// ValidateSlot decide se o horário proposto pode ser agendado.
// Predicado puro: quem chama busca os agendamentos ativos do petshop e
// injeta o relógio. Erros de negócio distintos por motivo:
//
//	date_in_past  — início no passado
//	too_soon      — fere a antecedência mínima (limite exato é aceito)
//	time_conflict — intervalo cruza agendamento ativo existente
func ValidateSlot(in ValidateSlotInput) error {
	if !in.Start.After(in.Now) {
		return httperr.ErrBusiness("date_in_past")
	}

	lead := in.LeadTime
	if lead <= 0 {
		lead = DefaultLeadTime
	}
	if in.Start.Before(in.Now.Add(lead)) {
		return httperr.ErrBusiness("too_soon")
	}

	end := in.Start.Add(in.Duration)
	for _, iv := range in.Existing {
		if Overlaps(in.Start, end, iv.Start, iv.End) {
			return httperr.ErrBusiness("time_conflict")
		}
	}

	return nil
}
