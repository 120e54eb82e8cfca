package documents

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pedidos-api/internal/application/dto"
	"github.com/jhoicas/pedidos-api/internal/application/notifications"
	"github.com/jhoicas/pedidos-api/internal/domain"
	"github.com/jhoicas/pedidos-api/internal/domain/entity"
	"github.com/jhoicas/pedidos-api/internal/domain/repository"
	"github.com/jhoicas/pedidos-api/pkg/logger"
)

// MaxDocumentSize tamaño máximo de un adjunto.
const MaxDocumentSize = 20 << 20

// URLExpiry vigencia de las URLs de descarga firmadas.
const URLExpiry = 15 * time.Minute

// ObjectStorage almacenamiento de archivos (S3/MinIO).
type ObjectStorage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignedGetURL(ctx context.Context, key, fileName string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
}

// UploadInput archivo recibido por la API.
type UploadInput struct {
	DocumentType string
	FileName     string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// UseCase documentos adjuntos a pedidos.
type UseCase struct {
	orders   repository.OrderRepository
	docs     repository.OrderDocumentRepository
	storage  ObjectStorage
	notifier notifications.Notifier
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(orders repository.OrderRepository, docs repository.OrderDocumentRepository, storage ObjectStorage, notifier notifications.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{orders: orders, docs: docs, storage: storage, notifier: notifier, log: log}
}

// Upload sube el archivo, guarda sus metadatos y notifica "Documento nuevo".
func (uc *UseCase) Upload(ctx context.Context, companyID, orderID string, in UploadInput) (*dto.DocumentResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrChannelDisabled
	}
	docType := strings.TrimSpace(in.DocumentType)
	if docType == "" {
		return nil, fmt.Errorf("%w: tipo de documento requerido", domain.ErrInvalidInput)
	}
	if in.Size <= 0 || in.Size > MaxDocumentSize {
		return nil, fmt.Errorf("%w: el archivo debe pesar entre 1 byte y %d MB", domain.ErrInvalidInput, MaxDocumentSize>>20)
	}
	order, err := uc.orders.GetByID(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	fileName := cleanFileName(in.FileName)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	doc := &entity.OrderDocument{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		CompanyID:    companyID,
		DocumentType: docType,
		FileName:     fileName,
		ContentType:  contentType,
		Size:         in.Size,
		UploadedAt:   time.Now().UTC(),
	}
	doc.ObjectKey = path.Join(companyID, order.ID, doc.ID+"-"+fileName)

	if err := uc.storage.Put(ctx, doc.ObjectKey, in.Body, in.Size, contentType); err != nil {
		return nil, fmt.Errorf("subir documento: %w", err)
	}
	if err := uc.docs.Create(ctx, doc); err != nil {
		if rerr := uc.storage.Remove(ctx, doc.ObjectKey); rerr != nil {
			uc.log.Warn().Err(rerr).Str("key", doc.ObjectKey).Msg("objeto huérfano en storage")
		}
		return nil, err
	}

	if uc.notifier != nil {
		p := notifications.OrderPayload(order)
		p.DocumentType = docType
		if _, err := uc.notifier.Dispatch(ctx, companyID, entity.EventNewDocument, p); err != nil {
			uc.log.Error().Err(err).Str("order", order.OrderNumber).Msg("no se pudo notificar el documento nuevo")
		}
	}
	return toDocumentResponse(doc), nil
}

// List documentos de un pedido.
func (uc *UseCase) List(ctx context.Context, companyID, orderID string) ([]dto.DocumentResponse, error) {
	list, err := uc.docs.ListByOrder(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		out = append(out, *toDocumentResponse(d))
	}
	return out, nil
}

// DownloadURL URL firmada para descargar el documento.
func (uc *UseCase) DownloadURL(ctx context.Context, companyID, orderID, docID string) (*dto.DownloadURLResponse, error) {
	if uc.storage == nil {
		return nil, domain.ErrChannelDisabled
	}
	doc, err := uc.docs.GetByID(ctx, companyID, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.OrderID != orderID {
		return nil, domain.ErrNotFound
	}
	url, err := uc.storage.PresignedGetURL(ctx, doc.ObjectKey, doc.FileName, URLExpiry)
	if err != nil {
		return nil, fmt.Errorf("firmar url: %w", err)
	}
	return &dto.DownloadURLResponse{URL: url, ExpiresAt: time.Now().UTC().Add(URLExpiry)}, nil
}

func cleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "documento"
	}
	return strings.ReplaceAll(name, " ", "_")
}

func toDocumentResponse(d *entity.OrderDocument) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:           d.ID,
		OrderID:      d.OrderID,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		Size:         d.Size,
		UploadedAt:   d.UploadedAt,
	}
}
