package interfaces

import (
	"context"
	"errors"

	"tapinvoice/internal/domain/entities"
)

var (
	// ErrSettlementTimeout signals that the bounded settlement wait was
	// exceeded before the transaction confirmed.
	ErrSettlementTimeout = errors.New("settlement timed out")

	// ErrSettlementUnavailable signals that the gateway is refusing calls,
	// e.g. while its circuit breaker is open.
	ErrSettlementUnavailable = errors.New("settlement gateway unavailable")
)

// ISettlementGateway abstracts the external settlement collaborator that
// transfers value to satisfy an invoice. Amount is the base-unit integer
// string from the invoice; token and network identify what to transfer and
// where.
type ISettlementGateway interface {
	Settle(ctx context.Context, to, amount, token, network string) (entities.Receipt, error)
}
