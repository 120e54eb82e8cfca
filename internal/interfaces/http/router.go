package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/pedidos-api/internal/application/auth"
	"github.com/jhoicas/pedidos-api/internal/application/documents"
	"github.com/jhoicas/pedidos-api/internal/application/expenses"
	"github.com/jhoicas/pedidos-api/internal/application/holidays"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/application/orders"
	"github.com/jhoicas/pedidos-api/internal/application/providers"
	"github.com/jhoicas/pedidos-api/internal/application/sweep"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProviderUC    *providers.ProviderUseCase
	OrderUC       *orders.OrderUseCase
	StatementUC   *orders.StatementUseCase
	DocumentUC    *documents.UseCase
	ExpenseUC     *expenses.UseCase
	ContactUC     *notifications.ContactUseCase
	PushUC        *notifications.PushUseCase
	HistoryUC     *notifications.HistoryUseCase
	PreferencesUC *notifications.PreferencesUseCase
	Dispatcher    *notifications.Dispatcher
	HolidayUC     *holidays.UseCase
	Sweeper       *sweep.Sweeper
	Companies     companyGetter
	Metrics       *metrics.Registry
	Log           *logger.Logger
	JWTSecret     string
	CronSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Cron (secreto compartido, no JWT)
	cronHandler := NewCronHandler(deps.Sweeper, deps.Log.Component("cron"))
	api.Get("/cron/expirations", CronAuth(deps.CronSecret), cronHandler.Expirations)

	notificationHandler := NewNotificationHandler(deps.ContactUC, deps.PushUC, deps.HistoryUC, deps.PreferencesUC, deps.Dispatcher)
	api.Get("/push/vapid-public-key", notificationHandler.VAPIDPublicKey)

	// Rutas protegidas (requieren Bearer Token y empresa activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireActiveCompany(deps.Companies))
	buyers := RequireRole(entity.RoleAdmin, entity.RoleCompras)
	finance := RequireRole(entity.RoleAdmin, entity.RoleFinanzas)
	admin := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/auth/company", authHandler.Company)

	// Providers
	providerHandler := NewProviderHandler(deps.ProviderUC)
	providersGroup := protected.Group("/providers")
	providersGroup.Get("/", providerHandler.List)
	providersGroup.Get("/:id", providerHandler.GetByID)
	providersGroup.Post("/", buyers, providerHandler.Create)
	providersGroup.Put("/:id", buyers, providerHandler.Update)
	providersGroup.Delete("/:id", admin, providerHandler.Delete)

	// Orders
	orderHandler := NewOrderHandler(deps.OrderUC, deps.StatementUC)
	documentHandler := NewDocumentHandler(deps.DocumentUC)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/payments/import", finance, orderHandler.ImportPayments)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Post("/", buyers, orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Put("/:id", buyers, orderHandler.Update)
	ordersGroup.Delete("/:id", admin, orderHandler.Delete)
	ordersGroup.Patch("/:id/status", buyers, orderHandler.ChangeStatus)
	ordersGroup.Post("/:id/installments/:number/pay", finance, orderHandler.MarkInstallmentPaid)
	ordersGroup.Get("/:id/statement", orderHandler.Statement)
	ordersGroup.Get("/:id/documents", documentHandler.List)
	ordersGroup.Post("/:id/documents", documentHandler.Upload)
	ordersGroup.Get("/:id/documents/:docId/download", documentHandler.DownloadURL)
	ordersGroup.Get("/:id/expenses", expenseHandler.List)
	ordersGroup.Post("/:id/expenses", finance, expenseHandler.Create)

	// Notification contacts
	contacts := protected.Group("/notification-contacts")
	contacts.Get("/", notificationHandler.ListContacts)
	contacts.Get("/:id", notificationHandler.GetContact)
	contacts.Post("/", admin, notificationHandler.CreateContact)
	contacts.Put("/:id", admin, notificationHandler.UpdateContact)
	contacts.Delete("/:id", admin, notificationHandler.DeleteContact)

	// Push subscriptions
	protected.Post("/push/subscriptions", notificationHandler.Subscribe)
	protected.Delete("/push/subscriptions", notificationHandler.Unsubscribe)

	// Notification history
	history := protected.Group("/notifications")
	history.Get("/", notificationHandler.ListHistory)
	history.Post("/read-all", notificationHandler.MarkAllRead)
	history.Post("/dispatch", admin, notificationHandler.Dispatch)
	history.Post("/:id/read", notificationHandler.MarkRead)

	// Preferences
	protected.Get("/preferences/alerts", notificationHandler.GetAlertPreferences)
	protected.Put("/preferences/alerts", admin, notificationHandler.SaveAlertPreferences)

	// Holidays
	holidayHandler := NewHolidayHandler(deps.HolidayUC)
	protected.Get("/holidays", holidayHandler.List)
}
