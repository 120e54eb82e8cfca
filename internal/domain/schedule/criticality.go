package schedule

import (
	"sort"
	"time"

	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// Criticality nivel de urgencia del próximo vencimiento de un pedido.
type Criticality string

const (
	CriticalityOverdue  Criticality = "vencido"
	CriticalityCritical Criticality = "critico"
	CriticalitySoon     Criticality = "pronto"
	CriticalityNormal   Criticality = "normal"
	CriticalityNone     Criticality = "sin-vencimiento"
)

// Umbrales en días (inclusive) de los niveles critico y pronto.
const (
	criticalDays = 3
	soonDays     = 7
)

// Rank orden de urgencia: vencido > critico > pronto > normal > sin-vencimiento.
func (c Criticality) Rank() int {
	switch c {
	case CriticalityOverdue:
		return 4
	case CriticalityCritical:
		return 3
	case CriticalitySoon:
		return 2
	case CriticalityNormal:
		return 1
	default:
		return 0
	}
}

// NextDueDate fecha de la cuota pendiente más próxima, o nil si no hay pendientes.
func NextDueDate(installments []entity.Installment) *time.Time {
	dates := make([]time.Time, 0, len(installments))
	for _, in := range installments {
		if in.IsPending() {
			dates = append(dates, in.DueDate)
		}
	}
	if len(dates) == 0 {
		return nil
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	next := dates[0]
	return &next
}

// DaysUntil días calendario entre now y due (negativo si due ya pasó).
func DaysUntil(due, now time.Time) int {
	return int(DateOnly(due).Sub(DateOnly(now)).Hours() / 24)
}

// Classify asigna el nivel de urgencia a la fecha de vencimiento más próxima.
func Classify(next *time.Time, now time.Time) Criticality {
	if next == nil {
		return CriticalityNone
	}
	days := DaysUntil(*next, now)
	switch {
	case days < 0:
		return CriticalityOverdue
	case days <= criticalDays:
		return CriticalityCritical
	case days <= soonDays:
		return CriticalitySoon
	default:
		return CriticalityNormal
	}
}

// ClassifyOrder atajo: próxima fecha pendiente + nivel.
func ClassifyOrder(o *entity.Order, now time.Time) (*time.Time, Criticality) {
	next := NextDueDate(o.Installments)
	return next, Classify(next, now)
}
