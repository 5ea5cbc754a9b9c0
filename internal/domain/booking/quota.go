package booking

import (
	"fmt"

	"github.com/BruksfildServices01/petgroom-scheduler/internal/models"
)

// ===============================
// Cota mensal do plano free
// ===============================

const (
	PlanFree    = "free"
	PlanPremium = "premium"

	SubscriptionActive = "active"

	// Limite de agendamentos por mês-calendário no plano free.
	// Conta todos os status, cancelados inclusive (política conservadora).
	FreePlanMonthlyLimit = 20
)

type QuotaError struct {
	Used  int
	Limit int
}

func (e QuotaError) Error() string {
	return fmt.Sprintf("monthly_quota_exceeded: %d/%d", e.Used, e.Limit)
}

// QuotaApplies: a cota vale quando não há assinatura, o plano é free,
// ou a assinatura não está ativa. Só agendamentos públicos passam por ela.
func QuotaApplies(sub *models.Subscription) bool {
	if sub == nil {
		return true
	}
	return sub.Plan == PlanFree || sub.Status != SubscriptionActive
}

func CheckQuota(sub *models.Subscription, usedInMonth int) error {
	if !QuotaApplies(sub) {
		return nil
	}
	if usedInMonth >= FreePlanMonthlyLimit {
		return QuotaError{Used: usedInMonth, Limit: FreePlanMonthlyLimit}
	}
	return nil
}
