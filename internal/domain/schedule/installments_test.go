package schedule_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func pct(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// GenerateInstallments
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateInstallments_Contado(t *testing.T) {
	total := decimal.NewFromInt(1500)
	issued := date(2024, 3, 10)

	got, err := schedule.GenerateInstallments(total, issued, entity.PaymentTerms{Type: entity.PaymentTypeCash})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].DueDate.Equal(issued))
	assert.True(t, got[0].Amount.Equal(total))
	assert.Equal(t, entity.InstallmentPending, got[0].Status)
}

func TestGenerateInstallments_CreditoSinPie(t *testing.T) {
	total := decimal.NewFromInt(2500)
	got, err := schedule.GenerateInstallments(total, date(2024, 1, 15),
		entity.PaymentTerms{Type: entity.PaymentTypeCredit, Days: 60})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].DueDate.Equal(date(2024, 3, 15)), "15 ene + 60 días = 15 mar (2024 bisiesto)")
	assert.True(t, got[0].Amount.Equal(total))
}

// Escenario de referencia: crédito 30 días con 20% de pie sobre 1000.
func TestGenerateInstallments_CreditoConPie_Escenario(t *testing.T) {
	got, err := schedule.GenerateInstallments(decimal.NewFromInt(1000), date(2024, 1, 1),
		entity.PaymentTerms{Type: entity.PaymentTypeCredit, Days: 30, DownPaymentPercentage: pct("20")})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.True(t, got[0].DueDate.Equal(date(2024, 1, 1)))
	assert.Equal(t, "200", got[0].Amount.String())
	assert.Equal(t, 1, got[0].Number)

	assert.True(t, got[1].DueDate.Equal(date(2024, 1, 31)))
	assert.Equal(t, "800", got[1].Amount.String())
	assert.Equal(t, 2, got[1].Number)

	for _, in := range got {
		assert.Equal(t, entity.InstallmentPending, in.Status)
	}
}

func TestGenerateInstallments_SumaIgualTotal(t *testing.T) {
	cases := []struct {
		total string
		pct   string
		days  int
	}{
		{"1000", "33.3333", 45},
		{"999.99", "12.5", 0},
		{"0.03", "50", 10},
		{"123456789.12", "99.99", 180},
	}
	for _, tc := range cases {
		t.Run(tc.total+"_"+tc.pct, func(t *testing.T) {
			total := decimal.RequireFromString(tc.total)
			got, err := schedule.GenerateInstallments(total, date(2024, 6, 1),
				entity.PaymentTerms{Type: entity.PaymentTypeCredit, Days: tc.days, DownPaymentPercentage: pct(tc.pct)})
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.True(t, got[0].Amount.Add(got[1].Amount).Equal(total), "la suma de cuotas debe ser el total")
			assert.True(t, got[0].Amount.Equal(total.Mul(decimal.RequireFromString(tc.pct)).Div(decimal.NewFromInt(100))))
		})
	}
}

func TestGenerateInstallments_NormalizaFechaAUTC(t *testing.T) {
	santiago := time.FixedZone("CLT", -4*3600)
	issued := time.Date(2024, 5, 2, 22, 30, 0, 0, santiago) // 3 may 02:30 UTC

	got, err := schedule.GenerateInstallments(decimal.NewFromInt(10), issued, entity.PaymentTerms{Type: entity.PaymentTypeCash})
	require.NoError(t, err)
	assert.True(t, got[0].DueDate.Equal(date(2024, 5, 3)))
}

func TestGenerateInstallments_CondicionInvalida(t *testing.T) {
	_, err := schedule.GenerateInstallments(decimal.NewFromInt(10), date(2024, 1, 1),
		entity.PaymentTerms{Type: entity.PaymentTypeCredit, Days: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentTerms)

	_, err = schedule.GenerateInstallments(decimal.NewFromInt(10), date(2024, 1, 1),
		entity.PaymentTerms{Type: entity.PaymentTypeCredit, Days: 30, DownPaymentPercentage: pct("100")})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentTerms)

	_, err = schedule.GenerateInstallments(decimal.NewFromInt(10), date(2024, 1, 1), entity.PaymentTerms{Type: "leasing"})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentTerms)
}

func TestMergePaidStatus_ConservaCuotasSinCambios(t *testing.T) {
	paidAt := date(2024, 1, 2)
	previous := []entity.Installment{
		{Number: 1, DueDate: date(2024, 1, 1), Amount: decimal.NewFromInt(200), Status: entity.InstallmentPaid, PaidAt: &paidAt},
		{Number: 2, DueDate: date(2024, 1, 31), Amount: decimal.NewFromInt(800), Status: entity.InstallmentPending},
	}
	regenerated, err := schedule.GenerateInstallments(decimal.NewFromInt(1000), date(2024, 1, 1),
		entity.PaymentTerms{Type: entity.PaymentTypeCredit, Days: 60, DownPaymentPercentage: pct("20")})
	require.NoError(t, err)

	merged := schedule.MergePaidStatus(previous, regenerated)
	assert.Equal(t, entity.InstallmentPaid, merged[0].Status, "el pie no cambió: sigue pagado")
	assert.Equal(t, &paidAt, merged[0].PaidAt)
	assert.Equal(t, entity.InstallmentPending, merged[1].Status, "el saldo cambió de fecha")
}

// ──────────────────────────────────────────────────────────────────────────────
// ParsePaymentTerms — coerción de valores crudos
// ──────────────────────────────────────────────────────────────────────────────

func TestParsePaymentTerms_AceptaTextoNumerico(t *testing.T) {
	terms, err := schedule.ParsePaymentTerms("credito", "30", "20")
	require.NoError(t, err)
	assert.Equal(t, 30, terms.Days)
	require.NotNil(t, terms.DownPaymentPercentage)
	assert.Equal(t, "20", terms.DownPaymentPercentage.String())
}

func TestParsePaymentTerms_NumerosJSON(t *testing.T) {
	terms, err := schedule.ParsePaymentTerms("CREDITO", float64(45), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentTypeCredit, terms.Type)
	assert.Equal(t, 45, terms.Days)
	assert.Nil(t, terms.DownPaymentPercentage)
	assert.False(t, terms.HasDownPayment())
}

func TestParsePaymentTerms_PieVacioEsAusente(t *testing.T) {
	terms, err := schedule.ParsePaymentTerms("credito", 15, "")
	require.NoError(t, err)
	assert.Nil(t, terms.DownPaymentPercentage)
}

func TestParsePaymentTerms_Contado(t *testing.T) {
	terms, err := schedule.ParsePaymentTerms("contado", "basura", "ignorado")
	require.NoError(t, err, "contado ignora days y pie")
	assert.Equal(t, entity.PaymentTypeCash, terms.Type)
}

func TestParsePaymentTerms_Invalidos(t *testing.T) {
	cases := []struct {
		name string
		typ  string
		days any
		pct  any
	}{
		{"tipo desconocido", "cheque", 30, nil},
		{"days no numérico", "credito", "treinta", nil},
		{"days negativo", "credito", "-5", nil},
		{"pie cero", "credito", 30, "0"},
		{"pie mayor a 100", "credito", 30, float64(150)},
		{"pie tipo raro", "credito", 30, []int{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schedule.ParsePaymentTerms(tc.typ, tc.days, tc.pct)
			assert.ErrorIs(t, err, domain.ErrInvalidPaymentTerms)
		})
	}
}
