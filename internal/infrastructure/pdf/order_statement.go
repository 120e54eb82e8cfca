// Package pdf genera el estado de cuenta de un pedido con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + RUT        │  Pedido N° + fecha emisión  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PEDIDO: proveedor / estado / moneda / total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CUOTAS: N° | Vencimiento | Monto | Estado | Pagada el       │
//	│  GASTOS: Fecha | Tipo | Nota | Monto                         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total / Pagado / Pendiente + próximo vencimiento   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

var _ orders.StatementGenerator = (*StatementGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 178, Green: 34, Blue: 34}
	colorOK      = &props.Color{Red: 34, Green: 120, Blue: 60}
)

const dateLayout = "02-01-2006"

// StatementGenerator implementa orders.StatementGenerator.
type StatementGenerator struct{}

// NewStatementGenerator construye el generador.
func NewStatementGenerator() *StatementGenerator { return &StatementGenerator{} }

// GenerateOrderStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) GenerateOrderStatement(_ context.Context, data orders.StatementData) ([]byte, error) {
	if data.Order == nil || data.Company == nil {
		return nil, fmt.Errorf("pdf: pedido y empresa requeridos")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta pedido "+data.Order.OrderNumber, true).
		WithAuthor(data.Company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(orderRow(data.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CUOTAS"))
	m.AddRows(installmentHeaderRow())
	m.AddRows(installmentRows(data.Order)...)

	if len(data.Expenses) > 0 {
		m.AddRows(row.New(3))
		m.AddRows(sectionTitle("GASTOS ASOCIADOS"))
		m.AddRows(expenseHeaderRow())
		m.AddRows(expenseRows(data.Expenses)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data orders.StatementData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+nonEmpty(data.Company.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Pedido #"+data.Order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+data.GeneratedAt.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func orderRow(o *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(o.ProviderName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Fecha: %s   |   Estado: %s   |   Moneda: %s   |   Total: %s",
				o.OrderDate.Format(dateLayout), o.Status, o.Currency, money(o.TotalAmount, o.Currency),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1, Color: color,
	}))
}

func installmentHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("N°", 1, align.Center),
		headerCell("Vencimiento", 3, align.Left),
		headerCell("Monto", 3, align.Right),
		headerCell("Estado", 2, align.Center),
		headerCell("Pagada el", 3, align.Left),
	)
}

func installmentRows(o *entity.Order) []core.Row {
	if len(o.Installments) == 0 {
		return []core.Row{row.New(6).Add(cell("Sin cuotas", 12, align.Left, colorGray))}
	}
	rows := make([]core.Row, 0, len(o.Installments))
	for _, in := range o.Installments {
		status, color := "Pendiente", colorDanger
		paidAt := "—"
		if !in.IsPending() {
			status, color = "Pagada", colorOK
			if in.PaidAt != nil {
				paidAt = in.PaidAt.Format(dateLayout)
			}
		}
		rows = append(rows, row.New(6).Add(
			cell(fmt.Sprintf("%d", in.Number), 1, align.Center, nil),
			cell(in.DueDate.Format(dateLayout), 3, align.Left, nil),
			cell(money(in.Amount, o.Currency), 3, align.Right, nil),
			cell(status, 2, align.Center, color),
			cell(paidAt, 3, align.Left, colorGray),
		))
	}
	return rows
}

func expenseHeaderRow() core.Row {
	return row.New(7).Add(
		headerCell("Fecha", 2, align.Left),
		headerCell("Tipo", 3, align.Left),
		headerCell("Nota", 4, align.Left),
		headerCell("Monto", 3, align.Right),
	)
}

func expenseRows(expenses []*entity.OrderExpense) []core.Row {
	rows := make([]core.Row, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, row.New(6).Add(
			cell(e.Date.Format(dateLayout), 2, align.Left, nil),
			cell(e.ExpenseType, 3, align.Left, nil),
			cell(nonEmpty(e.Note, "—"), 4, align.Left, colorGray),
			cell(money(e.Amount, e.Currency), 3, align.Right, nil),
		))
	}
	return rows
}

func totalsRow(data orders.StatementData) core.Row {
	o := data.Order
	paid := o.TotalAmount.Sub(data.Pending)
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Total pedido:"),
			label("Pagado:"),
			label("Pendiente:"),
		),
		col.New(3).Add(
			value(money(o.TotalAmount, o.Currency), nil),
			value(money(paid, o.Currency), colorOK),
			value(money(data.Pending, o.Currency), colorDanger),
		),
	)
}

func footerRow(data orders.StatementData) core.Row {
	next := "Sin cuotas pendientes"
	if data.NextDueDate != nil {
		next = fmt.Sprintf("Próximo vencimiento: %s (%s)", data.NextDueDate.Format(dateLayout), data.Criticality)
	}
	return row.New(12).Add(col.New(12).Add(
		text.New(next, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}),
		text.New("Documento informativo generado automáticamente; no constituye comprobante tributario.", props.Text{
			Size: 6.5, Color: colorGray, Top: 7,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formato chileno: "$1.234.567" en CLP, "US$1.234,50" en USD.
func money(d decimal.Decimal, currency string) string {
	if currency == entity.CurrencyUSD {
		fixed := d.StringFixed(2)
		intPart, frac, _ := strings.Cut(fixed, ".")
		return "US$" + formatMoney(intPart) + "," + frac
	}
	return "$" + formatMoney(d.StringFixed(0))
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
