// Package bootstrap arma el grafo de dependencias compartido por la API y pedidosctl.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/documents"
	"github.com/jhoicas/pedidos-api/internal/application/expenses"
	"github.com/jhoicas/pedidos-api/internal/application/holidays"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/application/providers"
	"github.com/jhoicas/pedidos-api/internal/application/sweep"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/email"
	infraholidays "github.com/jhoicas/pedidos-api/internal/infrastructure/holidays"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/pedidos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/pedidos-api/internal/infrastructure/redis"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/storage"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/webpush"
	"github.com/jhoicas/pedidos-api/pkg/config"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// Container casos de uso listos para usar y los recursos que hay que cerrar al salir.
type Container struct {
	Auth        *auth.AuthUseCase
	Providers   *providers.ProviderUseCase
	Orders      *orders.OrderUseCase
	Statement   *orders.StatementUseCase
	Documents   *documents.UseCase
	Expenses    *expenses.UseCase
	Contacts    *notifications.ContactUseCase
	Push        *notifications.PushUseCase
	History     *notifications.HistoryUseCase
	Preferences *notifications.PreferencesUseCase
	Dispatcher  *notifications.Dispatcher
	Holidays    *holidays.UseCase
	Sweeper     *sweep.Sweeper
	Companies   repository.CompanyRepository
	Metrics     *metrics.Registry

	pool  *pgxpool.Pool
	redis *goredis.Client
}

// Build conecta PostgreSQL (obligatorio) y las integraciones opcionales. Una integración sin
// configurar o inalcanzable deja su canal deshabilitado y se informa en el log.
func Build(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	c := &Container{pool: pool, Metrics: metrics.New()}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	documentRepo := postgres.NewOrderDocumentRepository(pool)
	expenseRepo := postgres.NewOrderExpenseRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	subscriptionRepo := postgres.NewPushSubscriptionRepository(pool)
	historyRepo := postgres.NewNotificationRepository(pool)
	prefsRepo := postgres.NewAlertPreferencesRepository(pool)
	c.Companies = companyRepo

	// Correo: sin API key el canal email queda deshabilitado.
	var emailSender notifications.EmailSender
	resendClient := email.NewClient(cfg.Email.ResendAPIKey, cfg.Email.From)
	if resendClient.Configured() {
		emailSender = resendClient
	} else {
		log.Warn().Msg("RESEND_API_KEY no configurada: correos deshabilitados")
	}

	// Web Push: la validez de las claves se decide una sola vez, aquí.
	pushSender := webpush.NewSender(cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subject)
	if !pushSender.Enabled() {
		log.Warn().Msg("claves VAPID ausentes o inválidas: push deshabilitado")
	}

	// Redis: lock del barrido y caché de feriados.
	var locker sweep.Locker
	var cache holidays.Cache
	if cfg.Redis.Addr != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible: barrido sin lock y feriados sin caché")
		} else {
			c.redis = rdb
			locker = infraredis.NewLocker(rdb)
			cache = infraredis.NewCache(rdb)
		}
	}

	// Object storage para documentos.
	var objects documents.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewMinIO(cfg.Storage)
		if err == nil {
			err = store.EnsureBucket(ctx)
		}
		if err != nil {
			log.Warn().Err(err).Msg("almacenamiento de documentos no disponible")
		} else {
			objects = store
		}
	}

	c.Dispatcher = notifications.NewDispatcher(
		contactRepo, subscriptionRepo, historyRepo, emailSender, pushSender,
		log.Component("notifications"),
		notifications.WithMetrics(c.Metrics),
		notifications.WithBaseURL(cfg.App.BaseURL),
	)

	c.Auth = auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}).WithTxRunner(postgres.NewTxRunner(pool))
	c.Providers = providers.NewProviderUseCase(providerRepo, orderRepo)
	c.Orders = orders.NewOrderUseCase(orderRepo, providerRepo, c.Dispatcher, log.Component("orders"))
	c.Statement = orders.NewStatementUseCase(c.Orders, companyRepo, expenseRepo, infrapdf.NewStatementGenerator())
	c.Documents = documents.NewUseCase(orderRepo, documentRepo, objects, c.Dispatcher, log.Component("documents"))
	c.Expenses = expenses.NewUseCase(orderRepo, expenseRepo, c.Dispatcher, log.Component("expenses"))
	c.Contacts = notifications.NewContactUseCase(contactRepo)
	c.Push = notifications.NewPushUseCase(subscriptionRepo, pushSender)
	c.History = notifications.NewHistoryUseCase(historyRepo)
	c.Preferences = notifications.NewPreferencesUseCase(prefsRepo, cfg.Sweep.DefaultDaysBefore)
	c.Holidays = holidays.NewUseCase(
		infraholidays.NewClient(cfg.Holidays.BaseURL),
		cache,
		time.Duration(cfg.Holidays.CacheTTLHours)*time.Hour,
		cfg.Holidays.DefaultCountry,
		log.Component("holidays"),
	)
	c.Sweeper = sweep.NewSweeper(
		companyRepo, orderRepo, prefsRepo, c.Dispatcher, locker, c.Metrics,
		sweep.Config{
			DefaultDaysBefore: cfg.Sweep.DefaultDaysBefore,
			LockTTL:           time.Duration(cfg.Sweep.LockTTLSeconds) * time.Second,
		},
		log.Component("sweep"),
	)
	return c, nil
}

// Close libera PostgreSQL y Redis.
func (c *Container) Close() {
	if c.redis != nil {
		_ = c.redis.Close()
	}
	c.pool.Close()
}
