package service

import (
	"context"

	"sales-pulse/models"
	"sales-pulse/ordermatrix"
)

// OrderFormServiceInterface defines the contract for order form operations
type OrderFormServiceInterface interface {
	BuildFromJSON(header ordermatrix.Header, items []byte, pageSize int) (*ordermatrix.Document, error)
	Render(ctx context.Context, orderID, format string) (*RenderedFile, error)
	Preview(ctx context.Context, orderID string) (*models.PreviewResponse, error)
	PreviewPage(ctx context.Context, sessionID string, page int, size string) (*RenderedFile, error)
	EmailOrderForm(ctx context.Context, orderID, to string) (string, error)
	ArchiveOrderForm(ctx context.Context, orderID string) (*models.ArchiveResponse, error)
}

// Ensure OrderFormService implements OrderFormServiceInterface
var _ OrderFormServiceInterface = (*OrderFormService)(nil)
