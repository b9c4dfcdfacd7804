package interfaces

import (
	"context"

	"tapinvoice/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Invoices are immutable once issued: the service only needs conditional
// create (nonce/id uniqueness enforced by the storage layer) and read by id.
// GetByID returns a zero-value Invoice when the id is unknown.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
}
