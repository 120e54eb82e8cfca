package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
)

// NotificationHandler contactos, suscripciones push, historial, preferencias y disparo manual.
type NotificationHandler struct {
	contacts    *notifications.ContactUseCase
	push        *notifications.PushUseCase
	history     *notifications.HistoryUseCase
	preferences *notifications.PreferencesUseCase
	dispatcher  *notifications.Dispatcher
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(
	contacts *notifications.ContactUseCase,
	push *notifications.PushUseCase,
	history *notifications.HistoryUseCase,
	preferences *notifications.PreferencesUseCase,
	dispatcher *notifications.Dispatcher,
) *NotificationHandler {
	return &NotificationHandler{
		contacts:    contacts,
		push:        push,
		history:     history,
		preferences: preferences,
		dispatcher:  dispatcher,
	}
}

// CreateContact godoc
// @Summary      Crear contacto de notificaciones
// @Description  settings debe traer los cinco eventos con sus canales email, inApp y push.
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContactRequest  true  "Contacto"
// @Success      201   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notification-contacts [post]
func (h *NotificationHandler) CreateContact(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return parseError(c, err)
	}
	out, err := h.contacts.Create(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListContacts godoc
// @Summary      Listar contactos de notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContactResponse
// @Router       /api/notification-contacts [get]
func (h *NotificationHandler) ListContacts(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.contacts.List(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetContact godoc
// @Summary      Obtener contacto
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del contacto"
// @Success      200  {object}  dto.ContactResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notification-contacts/{id} [get]
func (h *NotificationHandler) GetContact(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.contacts.Get(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateContact godoc
// @Summary      Reemplazar contacto
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del contacto"
// @Param        body  body  dto.ContactRequest  true  "Contacto"
// @Success      200   {object}  dto.ContactResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/notification-contacts/{id} [put]
func (h *NotificationHandler) UpdateContact(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.ContactRequest
	if err := c.BodyParser(&in); err != nil {
		return parseError(c, err)
	}
	out, err := h.contacts.Update(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteContact godoc
// @Summary      Eliminar contacto
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID del contacto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notification-contacts/{id} [delete]
func (h *NotificationHandler) DeleteContact(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.contacts.Delete(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VAPIDPublicKey godoc
// @Summary      Clave pública VAPID
// @Description  enabled=false cuando el servidor no tiene claves push válidas.
// @Tags         push
// @Produce      json
// @Success      200  {object}  dto.VAPIDKeyResponse
// @Router       /api/push/vapid-public-key [get]
func (h *NotificationHandler) VAPIDPublicKey(c *fiber.Ctx) error {
	return c.JSON(h.push.VAPIDPublicKey())
}

// Subscribe godoc
// @Summary      Registrar suscripción push
// @Description  Upsert por endpoint.
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.PushSubscriptionRequest  true  "PushSubscription del navegador"
// @Success      201
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/push/subscriptions [post]
func (h *NotificationHandler) Subscribe(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.PushSubscriptionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.push.Subscribe(c.UserContext(), companyID, GetUserID(c), c.Get(fiber.HeaderUserAgent), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// Unsubscribe godoc
// @Summary      Eliminar suscripción push
// @Tags         push
// @Security     Bearer
// @Accept       json
// @Param        body  body  dto.UnsubscribeRequest  true  "endpoint"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/push/subscriptions [delete]
func (h *NotificationHandler) Unsubscribe(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.UnsubscribeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Endpoint == "" {
		return badRequest(c, "VALIDATION", "endpoint es requerido")
	}
	if err := h.push.Unsubscribe(c.UserContext(), companyID, in.Endpoint); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListHistory godoc
// @Summary      Historial de notificaciones
// @Description  Más recientes primero.
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de registros (default 50, máx 200)"
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) ListHistory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.history.List(c.UserContext(), companyID, GetUserID(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	if err := h.history.MarkRead(c.UserContext(), companyID, c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MarkAllRead godoc
// @Summary      Marcar todo el historial como leído
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MarkAllReadResponse
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.history.MarkAllRead(c.UserContext(), companyID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dispatch godoc
// @Summary      Disparar un evento manualmente
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispatchRequest  true  "Evento y datos"
// @Success      200   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/notifications/dispatch [post]
func (h *NotificationHandler) Dispatch(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.dispatcher.DispatchManual(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetAlertPreferences godoc
// @Summary      Preferencias del barrido de vencimientos
// @Tags         preferences
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertPreferencesResponse
// @Router       /api/preferences/alerts [get]
func (h *NotificationHandler) GetAlertPreferences(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.preferences.Get(c.UserContext(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SaveAlertPreferences godoc
// @Summary      Guardar preferencias del barrido
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertPreferencesRequest  true  "days_before (0 a 90)"
// @Success      200   {object}  dto.AlertPreferencesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences/alerts [put]
func (h *NotificationHandler) SaveAlertPreferences(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.AlertPreferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.preferences.Save(c.UserContext(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
