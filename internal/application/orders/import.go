package orders

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
)

// MaxImportSize tamaño máximo del CSV de pagos.
const MaxImportSize = 2 << 20

var importDateLayouts = []string{"2006-01-02", "02-01-2006", "02/01/2006"}

// ImportPayments marca cuotas como pagadas a partir de un CSV con columnas
// numero_pedido;fecha_vencimiento[;monto]. Acepta UTF-8 o Windows-1252 y separador ';' o ','.
// Cada línea se aplica de forma independiente: las inválidas se informan en Errors.
func (uc *OrderUseCase) ImportPayments(ctx context.Context, companyID string, r io.Reader) (*dto.PaymentImportResponse, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	if len(raw) > MaxImportSize {
		return nil, fmt.Errorf("%w: el archivo supera %d bytes", domain.ErrInvalidInput, MaxImportSize)
	}
	content, err := decodeCSV(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: codificación no soportada", domain.ErrInvalidInput)
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.Comma = detectSeparator(content)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	res := &dto.PaymentImportResponse{Errors: []dto.PaymentImportError{}}
	touched := map[string]*entity.Order{}
	var order []string
	now := uc.now().UTC()
	line := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			res.Errors = append(res.Errors, dto.PaymentImportError{Line: line, Message: err.Error()})
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if isBlank(record) {
			continue
		}
		o, err := uc.applyPaymentLine(ctx, companyID, record, touched, now)
		if err != nil {
			res.Errors = append(res.Errors, dto.PaymentImportError{Line: line, Message: err.Error()})
			continue
		}
		if _, seen := touched[o.OrderNumber]; !seen {
			order = append(order, o.OrderNumber)
		}
		touched[o.OrderNumber] = o
		res.Updated++
	}

	for _, number := range order {
		o := touched[number]
		o.UpdatedAt = now
		if err := uc.orders.Update(ctx, o); err != nil {
			uc.log.Error().Err(err).Str("order", number).Msg("no se pudo guardar el pago importado")
			res.Errors = append(res.Errors, dto.PaymentImportError{Message: fmt.Sprintf("pedido %s: %v", number, err)})
			res.Updated -= paidIn(o, now)
		}
	}
	uc.log.Info().Str("company_id", companyID).Int("updated", res.Updated).Int("errors", len(res.Errors)).Msg("importación de pagos")
	return res, nil
}

func (uc *OrderUseCase) applyPaymentLine(ctx context.Context, companyID string, record []string, touched map[string]*entity.Order, now time.Time) (*entity.Order, error) {
	if len(record) < 2 {
		return nil, errors.New("se esperan al menos 2 columnas: pedido y fecha de vencimiento")
	}
	number := strings.TrimSpace(record[0])
	if number == "" {
		return nil, errors.New("número de pedido vacío")
	}
	due, err := parseImportDate(record[1])
	if err != nil {
		return nil, err
	}
	var amount *decimal.Decimal
	if len(record) > 2 && strings.TrimSpace(record[2]) != "" {
		a, err := parseImportAmount(record[2])
		if err != nil {
			return nil, err
		}
		amount = &a
	}

	o := touched[number]
	if o == nil {
		o, err = uc.orders.GetByNumber(ctx, companyID, number)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, fmt.Errorf("pedido %s no encontrado", number)
		}
	}
	for i := range o.Installments {
		in := &o.Installments[i]
		if !in.IsPending() || !in.DueDate.Equal(due) {
			continue
		}
		if amount != nil && !in.Amount.Equal(*amount) {
			continue
		}
		in.Status = entity.InstallmentPaid
		paidAt := now
		in.PaidAt = &paidAt
		return o, nil
	}
	return nil, fmt.Errorf("pedido %s: no hay cuota pendiente con vencimiento %s", number, due.Format("2006-01-02"))
}

// paidIn cuenta las cuotas marcadas en esta importación (mismo instante de pago).
func paidIn(o *entity.Order, now time.Time) int {
	n := 0
	for _, in := range o.Installments {
		if in.PaidAt != nil && in.PaidAt.Equal(now) {
			n++
		}
	}
	return n
}

func decodeCSV(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func detectSeparator(content string) rune {
	first := content
	if i := strings.IndexAny(content, "\r\n"); i >= 0 {
		first = content[:i]
	}
	if strings.Count(first, ";") >= strings.Count(first, ",") && strings.Contains(first, ";") {
		return ';'
	}
	return ','
}

func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	h := strings.ToLower(strings.TrimSpace(record[0]))
	return strings.Contains(h, "pedido") || strings.Contains(h, "order") || strings.Contains(h, "número") || strings.Contains(h, "numero")
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseImportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range importDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return schedule.DateOnly(t), nil
		}
	}
	t, err := dto.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}
	return schedule.DateOnly(t), nil
}

// parseImportAmount acepta "1234.56", "1234,56" y "1.234,56".
func parseImportAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("monto inválido %q", s)
	}
	return d, nil
}
