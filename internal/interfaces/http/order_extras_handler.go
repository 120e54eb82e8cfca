package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pedidos-api/internal/application/documents"
	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/expenses"
)

// DocumentHandler adjuntos de un pedido.
type DocumentHandler struct {
	uc *documents.UseCase
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(uc *documents.UseCase) *DocumentHandler {
	return &DocumentHandler{uc: uc}
}

// Upload godoc
// @Summary      Subir documento del pedido
// @Description  Guarda el archivo en el almacenamiento de objetos y notifica "Documento nuevo".
// @Tags         documents
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id             path      string  true  "ID del pedido"
// @Param        document_type  formData  string  true  "Tipo (factura, BL, packing list...)"
// @Param        file           formData  file    true  "Archivo"
// @Success      201  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse  "almacenamiento no configurado"
// @Router       /api/orders/{id}/documents [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "MISSING_FILE", "el campo file es requerido")
	}
	f, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	out, err := h.uc.Upload(c.UserContext(), companyID, c.Params("id"), documents.UploadInput{
		DocumentType: c.FormValue("document_type"),
		FileName:     fh.Filename,
		ContentType:  fh.Header.Get(fiber.HeaderContentType),
		Size:         fh.Size,
		Body:         f,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos del pedido
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/orders/{id}/documents [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DownloadURL godoc
// @Summary      URL firmada de descarga
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del pedido"
// @Param        docId  path  string  true  "ID del documento"
// @Success      200  {object}  dto.DownloadURLResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/documents/{docId}/download [get]
func (h *DocumentHandler) DownloadURL(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.DownloadURL(c.UserContext(), companyID, c.Params("id"), c.Params("docId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExpenseHandler gastos de un pedido.
type ExpenseHandler struct {
	uc *expenses.UseCase
}

// NewExpenseHandler construye el handler.
func NewExpenseHandler(uc *expenses.UseCase) *ExpenseHandler {
	return &ExpenseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar gasto del pedido
// @Description  Notifica "Gasto nuevo" a los contactos suscritos.
// @Tags         expenses
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del pedido"
// @Param        body  body  dto.CreateExpenseRequest  true  "Gasto"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), companyID, c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar gastos del pedido
// @Tags         expenses
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {array}  dto.ExpenseResponse
// @Router       /api/orders/{id}/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return missingCompany(c)
	}
	out, err := h.uc.List(c.UserContext(), companyID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
