// Package sweep implementa el barrido de vencimientos: recorre las cuotas pendientes de los
// pedidos abiertos de cada empresa y despacha avisos de "Cuota vencida" y "Vencimiento de cuota".
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/domain/schedule"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Locker lock distribuido por empresa. Acquire devuelve domain.ErrSweepInProgress si ya está tomado.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// Metrics métricas del barrido.
type Metrics interface {
	SweepRun(result string)
	SweepAlert(alertType string)
	SweepDuration(d time.Duration)
}

type nopMetrics struct{}

func (nopMetrics) SweepRun(string)             {}
func (nopMetrics) SweepAlert(string)           {}
func (nopMetrics) SweepDuration(time.Duration) {}

// Report resultado del barrido de una empresa.
type Report struct {
	CompanyID string
	Alerts    int
	Errors    int
	Results   []dto.SweepResult
}

// Config parámetros del barrido.
type Config struct {
	DefaultDaysBefore int
	LockTTL           time.Duration
}

// Sweeper ejecuta el barrido.
type Sweeper struct {
	companies repository.CompanyRepository
	orders    repository.OrderRepository
	prefs     repository.AlertPreferencesRepository
	notifier  notifications.Notifier
	locker    Locker
	metrics   Metrics
	cfg       Config
	log       *logger.Logger
}

// NewSweeper construye el barrido. locker y metrics pueden ser nil.
func NewSweeper(
	companies repository.CompanyRepository,
	orders repository.OrderRepository,
	prefs repository.AlertPreferencesRepository,
	notifier notifications.Notifier,
	locker Locker,
	metrics Metrics,
	cfg Config,
	log *logger.Logger,
) *Sweeper {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 5 * time.Minute
	}
	return &Sweeper{
		companies: companies,
		orders:    orders,
		prefs:     prefs,
		notifier:  notifier,
		locker:    locker,
		metrics:   metrics,
		cfg:       cfg,
		log:       log,
	}
}

// Run barre los pedidos de una empresa. Los errores por pedido o cuota quedan en Results;
// solo falla si no se pueden leer las preferencias o los pedidos, o si el lock está tomado.
func (s *Sweeper) Run(ctx context.Context, companyID string, now time.Time) (*Report, error) {
	start := time.Now()
	report, err := s.run(ctx, companyID, now)
	s.metrics.SweepDuration(time.Since(start))
	switch {
	case errors.Is(err, domain.ErrSweepInProgress):
		s.metrics.SweepRun("locked")
	case err != nil:
		s.metrics.SweepRun("error")
	default:
		s.metrics.SweepRun("ok")
	}
	return report, err
}

func (s *Sweeper) run(ctx context.Context, companyID string, now time.Time) (*Report, error) {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, "sweep:"+companyID, s.cfg.LockTTL)
		if err != nil {
			return nil, err
		}
		defer func() {
			if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
				s.log.Warn().Err(rerr).Str("company_id", companyID).Msg("no se pudo liberar el lock del barrido")
			}
		}()
	}

	daysBefore := s.cfg.DefaultDaysBefore
	prefs, err := s.prefs.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("leer preferencias: %w", err)
	}
	if prefs != nil {
		daysBefore = prefs.DaysBefore
	}

	// las cuotas vencen a medianoche UTC: una cuota de hoy ya está vencida pasada esa hora
	now = now.UTC()
	upcoming := schedule.UpcomingLimit(now, daysBefore)

	open, err := s.orders.List(ctx, companyID, entity.OrderFilter{NotStatus: entity.OrderStatusPaid})
	if err != nil {
		return nil, fmt.Errorf("listar pedidos: %w", err)
	}

	report := &Report{CompanyID: companyID, Results: []dto.SweepResult{}}
	for _, o := range open {
		for _, in := range o.Installments {
			if !in.IsPending() {
				continue
			}
			alert := schedule.ClassifyAlert(in.DueDate, now, upcoming)
			if alert == schedule.AlertNone {
				continue
			}
			s.alert(ctx, o, in, alert, report)
		}
	}

	s.log.Info().
		Str("company_id", companyID).
		Int("orders", len(open)).
		Int("alerts", report.Alerts).
		Int("errors", report.Errors).
		Int("days_before", daysBefore).
		Msg("barrido de vencimientos")
	return report, nil
}

func (s *Sweeper) alert(ctx context.Context, o *entity.Order, in entity.Installment, alert schedule.AlertType, report *Report) {
	event := entity.EventInstallmentDueSoon
	if alert == schedule.AlertOverdue {
		event = entity.EventInstallmentOverdue
	}
	result := dto.SweepResult{
		CompanyID:   o.CompanyID,
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Installment: in.Number,
		AlertType:   string(alert),
		DueDate:     in.DueDate.Format("2006-01-02"),
	}
	res, err := s.notifier.Dispatch(ctx, o.CompanyID, event, notifications.InstallmentPayload(o, in))
	switch {
	case err != nil:
		result.Error = err.Error()
		report.Errors++
		s.log.Error().Err(err).Str("order", o.OrderNumber).Int("installment", in.Number).Msg("no se pudo despachar la alerta")
	case len(res.Errors) > 0:
		result.Error = fmt.Sprintf("%d envíos fallidos: %v", len(res.Errors), res.Errors[0])
		report.Errors++
		report.Alerts++
		s.metrics.SweepAlert(string(alert))
	default:
		report.Alerts++
		s.metrics.SweepAlert(string(alert))
	}
	report.Results = append(report.Results, result)
}

// RunAll barre todas las empresas activas. Un lock tomado o un error de una empresa
// se registra en los resultados y no detiene al resto.
func (s *Sweeper) RunAll(ctx context.Context, now time.Time) ([]dto.SweepResult, error) {
	ids, err := s.companies.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar empresas: %w", err)
	}
	results := []dto.SweepResult{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		report, err := s.Run(ctx, id, now)
		if err != nil {
			s.log.Warn().Err(err).Str("company_id", id).Msg("barrido omitido")
			results = append(results, dto.SweepResult{CompanyID: id, Error: err.Error()})
			continue
		}
		results = append(results, report.Results...)
	}
	return results, nil
}

// Summary mensaje para la respuesta del cron.
func Summary(results []dto.SweepResult) string {
	alerts, failures := 0, 0
	for _, r := range results {
		if r.AlertType != "" {
			alerts++
		}
		if r.Error != "" {
			failures++
		}
	}
	return fmt.Sprintf("Barrido completado: %d alertas, %d con errores", alerts, failures)
}
