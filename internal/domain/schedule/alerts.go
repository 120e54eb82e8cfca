package schedule

import "time"

// AlertType resultado del barrido para una cuota pendiente.
type AlertType string

const (
	AlertOverdue AlertType = "VENCIDO"
	AlertDueSoon AlertType = "PRÓXIMO A VENCER"
	AlertNone    AlertType = ""
)

// ClassifyAlert compara instantes: due < now → VENCIDO; now <= due <= upcoming → PRÓXIMO A VENCER.
func ClassifyAlert(due, now, upcoming time.Time) AlertType {
	switch {
	case due.Before(now):
		return AlertOverdue
	case !due.After(upcoming):
		return AlertDueSoon
	default:
		return AlertNone
	}
}

// UpcomingLimit límite superior de la ventana "próximo a vencer".
func UpcomingLimit(now time.Time, daysBefore int) time.Time {
	return now.AddDate(0, 0, daysBefore)
}
