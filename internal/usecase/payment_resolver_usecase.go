package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/usecase/interfaces"
)

var (
	// ErrInvoiceMissingFields and ErrInvoiceExpired both make an invoice
	// unpayable; they stay distinct so the caller can message them
	// differently.
	ErrInvoiceMissingFields = errors.New("invoice missing required fields")
	ErrInvoiceExpired       = errors.New("invoice expired")
	ErrInvoiceBadSignature  = errors.New("invoice signature verification failed")

	// ErrPaymentInProgress rejects a duplicate Pay while an attempt for the
	// same invoice is outstanding.
	ErrPaymentInProgress = errors.New("payment already in progress")

	// ErrPaymentFailed wraps a settlement gateway rejection or error.
	ErrPaymentFailed = errors.New("payment failed")
)

// DefaultSettleTimeout bounds the wait on the settlement collaborator.
const DefaultSettleTimeout = 15 * time.Second

// IPaymentResolverUseCase drives the client-side invoice payment flow:
// fetch by id, validate, settle.
//
// Verify is pure and fails closed: any verifier error is treated the same as
// an invalid signature. Pay re-verifies its input, so an unverified invoice
// can never reach the settlement gateway.
type IPaymentResolverUseCase interface {
	Resolve(ctx context.Context, id string) (entities.Invoice, error)
	Verify(inv entities.Invoice, now time.Time) error
	Pay(ctx context.Context, inv entities.Invoice) (entities.Receipt, error)
	Attempt(nonce string) entities.PaymentAttempt
}

type PaymentResolverUseCase struct {
	source   interfaces.IInvoiceSource
	gateway  interfaces.ISettlementGateway
	verifier interfaces.ISignatureVerifier

	settleTimeout time.Duration
	now           func() time.Time

	// mu guards inFlight and attempts. Pay must observe the latest attempt
	// state synchronously before deciding to proceed, so a double-tap can
	// never launch two settlement calls for the same invoice.
	mu       sync.Mutex
	inFlight map[string]bool
	attempts map[string]entities.PaymentAttempt
}

var _ IPaymentResolverUseCase = (*PaymentResolverUseCase)(nil)

func NewPaymentResolverUseCase(
	source interfaces.IInvoiceSource,
	gateway interfaces.ISettlementGateway,
	verifier interfaces.ISignatureVerifier,
) *PaymentResolverUseCase {
	return &PaymentResolverUseCase{
		source:        source,
		gateway:       gateway,
		verifier:      verifier,
		settleTimeout: DefaultSettleTimeout,
		now:           time.Now,
		inFlight:      make(map[string]bool),
		attempts:      make(map[string]entities.PaymentAttempt),
	}
}

// WithSettleTimeout overrides the bounded settlement wait. Zero or negative
// values keep the default.
func (u *PaymentResolverUseCase) WithSettleTimeout(d time.Duration) *PaymentResolverUseCase {
	if d > 0 {
		u.settleTimeout = d
	}
	return u
}

// Resolve fetches an invoice by id and validates it. The invoice is returned
// alongside any validation error so the caller can still render its details
// in an error state; a non-nil error means it must not be offered as payable.
func (u *PaymentResolverUseCase) Resolve(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}
	if u.source == nil {
		return entities.Invoice{}, errors.New("invoice source not configured")
	}

	log.Printf("[resolver][usecase] fetch start id=%s", id)
	inv, err := u.source.FetchInvoice(ctx, id)
	if err != nil {
		log.Printf("[resolver][usecase] fetch failed id=%s err=%v", id, err)
		return entities.Invoice{}, err
	}

	if err := u.Verify(inv, u.now()); err != nil {
		log.Printf("[resolver][usecase] verification failed id=%s err=%v", id, err)
		return inv, err
	}
	log.Printf("[resolver][usecase] resolve success id=%s nonce=%s exp=%d", id, inv.Nonce, inv.Expiry)
	return inv, nil
}

// Verify runs the structural, temporal, and signature checks. It is
// side-effect free; nil means the invoice is payable at the given instant.
func (u *PaymentResolverUseCase) Verify(inv entities.Invoice, now time.Time) error {
	if missing := inv.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvoiceMissingFields, strings.Join(missing, ", "))
	}
	if _, err := inv.AmountUnits(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvoiceMissingFields, err)
	}
	if inv.Expired(now) {
		return fmt.Errorf("%w: exp=%d now=%d", ErrInvoiceExpired, inv.Expiry, now.Unix())
	}
	if u.verifier == nil {
		return fmt.Errorf("%w: verifier not configured", ErrInvoiceBadSignature)
	}
	ok, err := u.verifier.VerifyInvoice(inv)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvoiceBadSignature, err)
	}
	if !ok {
		return ErrInvoiceBadSignature
	}
	return nil
}

// Pay settles a verified invoice through the settlement gateway.
//
// Exactly one attempt per invoice may be in flight: the guard is taken
// before any external call and released on every exit path, so a thrown
// error can never leave it stuck. Repeated calls while pending fail with
// ErrPaymentInProgress and do not reach the gateway.
func (u *PaymentResolverUseCase) Pay(ctx context.Context, inv entities.Invoice) (entities.Receipt, error) {
	if err := u.Verify(inv, u.now()); err != nil {
		return entities.Receipt{}, err
	}
	if u.gateway == nil {
		return entities.Receipt{}, errors.New("settlement gateway not configured")
	}

	key := inv.Nonce
	u.mu.Lock()
	if u.inFlight[key] {
		u.mu.Unlock()
		log.Printf("[resolver][usecase] duplicate pay rejected nonce=%s", key)
		return entities.Receipt{}, ErrPaymentInProgress
	}
	u.inFlight[key] = true
	u.setAttemptLocked(key, entities.AttemptStatePending, "")
	u.mu.Unlock()

	defer func() {
		u.mu.Lock()
		delete(u.inFlight, key)
		u.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, u.settleTimeout)
	defer cancel()

	log.Printf("[resolver][usecase] settle start nonce=%s to=%s amt=%s token=%s net=%s", key, inv.To, inv.Amount, inv.Token, inv.Network)
	receipt, err := u.gateway.Settle(ctx, inv.To, inv.Amount, inv.Token, inv.Network)
	if err != nil {
		u.setAttempt(key, entities.AttemptStateFailed, "")
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, interfaces.ErrSettlementTimeout) {
			log.Printf("[resolver][usecase] settle timed out nonce=%s err=%v", key, err)
			return entities.Receipt{}, fmt.Errorf("%w: %w", interfaces.ErrSettlementTimeout, err)
		}
		log.Printf("[resolver][usecase] settle failed nonce=%s err=%v", key, err)
		return entities.Receipt{}, fmt.Errorf("%w: %w", ErrPaymentFailed, err)
	}

	u.setAttempt(key, entities.AttemptStateSuccess, receipt.Hash)
	log.Printf("[resolver][usecase] settle success nonce=%s hash=%s", key, receipt.Hash)
	return receipt, nil
}

// Attempt returns the current attempt state for an invoice nonce, idle when
// none has been started.
func (u *PaymentResolverUseCase) Attempt(nonce string) entities.PaymentAttempt {
	u.mu.Lock()
	defer u.mu.Unlock()
	if a, ok := u.attempts[nonce]; ok {
		return a
	}
	return entities.PaymentAttempt{InvoiceNonce: nonce, State: entities.AttemptStateIdle}
}

func (u *PaymentResolverUseCase) setAttempt(nonce string, state entities.AttemptState, txHash string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setAttemptLocked(nonce, state, txHash)
}

func (u *PaymentResolverUseCase) setAttemptLocked(nonce string, state entities.AttemptState, txHash string) {
	u.attempts[nonce] = entities.PaymentAttempt{
		InvoiceNonce: nonce,
		State:        state,
		TxHash:       txHash,
		UpdatedAt:    u.now().UTC(),
	}
}
