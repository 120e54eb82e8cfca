package schedule

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

// DateOnly normaliza un instante a la medianoche UTC de su fecha.
func DateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateInstallments deriva el calendario de cuotas de un pedido:
//
//	contado              → 1 cuota: fecha de emisión, monto total
//	crédito sin pie      → 1 cuota: emisión + días, monto total
//	crédito con pie p%   → 2 cuotas: emisión con total*p/100, emisión + días con el saldo
//
// El saldo se calcula como total - pie, así la suma de cuotas es exactamente el total.
// No se aplica redondeo de moneda.
func GenerateInstallments(total decimal.Decimal, orderDate time.Time, terms entity.PaymentTerms) ([]entity.Installment, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: el monto total no puede ser negativo", domain.ErrInvalidInput)
	}
	issued := DateOnly(orderDate)

	switch {
	case terms.Type == entity.PaymentTypeCash:
		return []entity.Installment{pending(1, issued, total)}, nil
	case terms.HasDownPayment():
		down := total.Mul(*terms.DownPaymentPercentage).Div(hundred)
		return []entity.Installment{
			pending(1, issued, down),
			pending(2, issued.AddDate(0, 0, terms.Days), total.Sub(down)),
		}, nil
	default:
		return []entity.Installment{pending(1, issued.AddDate(0, 0, terms.Days), total)}, nil
	}
}

// MergePaidStatus conserva el estado pagado de las cuotas anteriores cuya fecha y monto
// no cambiaron al regenerar el calendario.
func MergePaidStatus(previous, regenerated []entity.Installment) []entity.Installment {
	out := make([]entity.Installment, len(regenerated))
	copy(out, regenerated)
	for i := range out {
		for _, p := range previous {
			if p.Status == entity.InstallmentPaid && p.DueDate.Equal(out[i].DueDate) && p.Amount.Equal(out[i].Amount) {
				out[i].Status = entity.InstallmentPaid
				out[i].PaidAt = p.PaidAt
				break
			}
		}
	}
	return out
}

func pending(n int, due time.Time, amount decimal.Decimal) entity.Installment {
	return entity.Installment{
		Number:  n,
		DueDate: due,
		Amount:  amount,
		Status:  entity.InstallmentPending,
	}
}
