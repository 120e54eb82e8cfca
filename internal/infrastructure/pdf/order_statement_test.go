package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"25000":    "25.000",
		"1000000":  "1.000.000",
		"-1234567": "-1.234.567",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(in), in)
	}
}

func TestMoney_PorMoneda(t *testing.T) {
	assert.Equal(t, "$1.234.568", money(decimal.RequireFromString("1234567.6"), entity.CurrencyCLP))
	assert.Equal(t, "US$1.234,50", money(decimal.RequireFromString("1234.5"), entity.CurrencyUSD))
}

func TestGenerateOrderStatement(t *testing.T) {
	due := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	paid := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	data := orders.StatementData{
		Company: &entity.Company{Name: "Importadora Sur", TaxID: "76.123.456-7"},
		Order: &entity.Order{
			OrderNumber:  "OC-2024-001",
			ProviderName: "Textiles Andes",
			OrderDate:    paid,
			TotalAmount:  decimal.NewFromInt(1000),
			Currency:     entity.CurrencyUSD,
			Status:       entity.OrderStatusTransit,
			Installments: []entity.Installment{
				{Number: 1, DueDate: paid, Amount: decimal.NewFromInt(300), Status: entity.InstallmentPaid, PaidAt: &paid},
				{Number: 2, DueDate: due, Amount: decimal.NewFromInt(700), Status: entity.InstallmentPending},
			},
		},
		Expenses: []*entity.OrderExpense{
			{ExpenseType: "flete", Amount: decimal.NewFromInt(120), Currency: entity.CurrencyUSD, Date: paid},
		},
		NextDueDate: &due,
		Criticality: "pronto",
		GeneratedAt: time.Date(2024, 2, 3, 12, 0, 0, 0, time.UTC),
		Pending:     decimal.NewFromInt(700),
	}

	out, err := NewStatementGenerator().GenerateOrderStatement(context.Background(), data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateOrderStatement_SinPedido(t *testing.T) {
	_, err := NewStatementGenerator().GenerateOrderStatement(context.Background(), orders.StatementData{})
	assert.Error(t, err)
}
