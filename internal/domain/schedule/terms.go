// Package schedule contiene las reglas puras de cuotas: generación del calendario de pago
// a partir de la condición del proveedor y clasificación de vencimientos.
package schedule

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ParsePaymentTerms construye la condición de pago desde valores crudos del request.
// days y downPayment aceptan número o texto numérico ("30", "20.5"); nil o "" = ausente.
func ParsePaymentTerms(termType string, days, downPayment any) (entity.PaymentTerms, error) {
	terms := entity.PaymentTerms{Type: strings.ToLower(strings.TrimSpace(termType))}
	switch terms.Type {
	case entity.PaymentTypeCash:
		return terms, nil
	case entity.PaymentTypeCredit:
	default:
		return entity.PaymentTerms{}, fmt.Errorf("%w: tipo %q", domain.ErrInvalidPaymentTerms, termType)
	}

	d, present, err := coerceDecimal(days)
	if err != nil {
		return entity.PaymentTerms{}, fmt.Errorf("%w: days: %v", domain.ErrInvalidPaymentTerms, err)
	}
	if present {
		terms.Days = int(d.IntPart())
	}
	pct, present, err := coerceDecimal(downPayment)
	if err != nil {
		return entity.PaymentTerms{}, fmt.Errorf("%w: downPaymentPercentage: %v", domain.ErrInvalidPaymentTerms, err)
	}
	if present {
		terms.DownPaymentPercentage = &pct
	}
	if err := ValidateTerms(terms); err != nil {
		return entity.PaymentTerms{}, err
	}
	return terms, nil
}

// ValidateTerms verifica los invariantes: days >= 0 y pie en (0,100).
func ValidateTerms(t entity.PaymentTerms) error {
	switch t.Type {
	case entity.PaymentTypeCash:
		return nil
	case entity.PaymentTypeCredit:
		if t.Days < 0 {
			return fmt.Errorf("%w: days debe ser >= 0", domain.ErrInvalidPaymentTerms)
		}
		if p := t.DownPaymentPercentage; p != nil {
			if p.LessThanOrEqual(decimal.Zero) || p.GreaterThanOrEqual(hundred) {
				return fmt.Errorf("%w: el pie debe estar entre 0 y 100 (exclusivo)", domain.ErrInvalidPaymentTerms)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: tipo %q", domain.ErrInvalidPaymentTerms, t.Type)
	}
}

// coerceDecimal convierte un valor JSON decodificado a decimal. present=false si es nil o "".
func coerceDecimal(v any) (decimal.Decimal, bool, error) {
	switch x := v.(type) {
	case nil:
		return decimal.Zero, false, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, false, fmt.Errorf("valor no finito")
		}
		return decimal.NewFromFloat(x), true, nil
	case int:
		return decimal.NewFromInt(int64(x)), true, nil
	case int64:
		return decimal.NewFromInt(x), true, nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil, err
	case decimal.Decimal:
		return x, true, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return decimal.Zero, false, nil
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			return decimal.Zero, false, fmt.Errorf("%q no es numérico", x)
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil, err
	default:
		return decimal.Zero, false, fmt.Errorf("tipo %T no soportado", v)
	}
}
