package interfaces

import (
	"context"
	"errors"

	"tapinvoice/internal/domain/entities"
)

var (
	// ErrInvoiceNotFound signals "no such invoice, or service unreachable".
	// Transport failures and non-2xx responses are deliberately folded
	// together: the caller treats them identically.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceDecode signals a response body that did not match the
	// invoice wire shape.
	ErrInvoiceDecode = errors.New("invoice payload decode failed")

	// ErrFetchTimeout signals that the bounded fetch wait was exceeded.
	ErrFetchTimeout = errors.New("invoice fetch timed out")
)

// IInvoiceSource is the client-side read contract against the invoice
// service (GET /i/{id}). Implementations are side-effect free and safe to
// retry; errors wrap the sentinels above.
type IInvoiceSource interface {
	FetchInvoice(ctx context.Context, id string) (entities.Invoice, error)
}
