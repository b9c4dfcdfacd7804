package usecase

import (
	"context"
	"errors"
	"log"
	"math/big"
	"strings"
	"time"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/usecase/interfaces"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

var (
	ErrInvalidInvoiceID      = errors.New("invalid invoice id")
	ErrInvalidRecipient      = errors.New("invalid recipient address")
	ErrInvalidInvoiceAmount  = errors.New("invalid invoice amount")
	ErrInvalidInvoiceTTL     = errors.New("invalid invoice ttl")
	ErrInvalidTokenDecimals  = errors.New("invalid token decimals")
	ErrInvalidInvoiceNetwork = errors.New("invalid invoice network")
	ErrInvalidInvoiceToken   = errors.New("invalid invoice token")
)

// DefaultInvoiceTTL bounds how long an issued invoice stays payable when the
// caller does not ask for a specific ttl.
const DefaultInvoiceTTL = 15 * time.Minute

// IssueInvoiceCommand carries the issuer-facing inputs for a new invoice.
// Amount is the base-unit integer string; TTL is relative, converted to the
// absolute exp deadline at issue time.
type IssueInvoiceCommand struct {
	Network  string
	Token    string
	Decimals int
	To       string
	Amount   string
	Memo     string
	TTL      time.Duration
}

// IInvoiceUseCase exposes the issuing side of the invoice lifecycle:
// invoices are created signed and time-bounded, then served read-only by id.
type IInvoiceUseCase interface {
	Issue(ctx context.Context, cmd IssueInvoiceCommand) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
}

type InvoiceUseCase struct {
	repo   interfaces.IInvoiceRepository
	signer interfaces.IInvoiceSigner
	now    func() time.Time
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, signer interfaces.IInvoiceSigner) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, signer: signer, now: time.Now}
}

func (u *InvoiceUseCase) Issue(ctx context.Context, cmd IssueInvoiceCommand) (entities.Invoice, error) {
	log.Printf("[invoice][usecase] issue start net=%s token=%s to=%s amt=%s", cmd.Network, cmd.Token, cmd.To, cmd.Amount)

	if strings.TrimSpace(cmd.Network) == "" {
		return entities.Invoice{}, ErrInvalidInvoiceNetwork
	}
	if strings.TrimSpace(cmd.Token) == "" {
		return entities.Invoice{}, ErrInvalidInvoiceToken
	}
	if cmd.Decimals < 0 || cmd.Decimals > 36 {
		return entities.Invoice{}, ErrInvalidTokenDecimals
	}
	if !common.IsHexAddress(cmd.To) {
		return entities.Invoice{}, ErrInvalidRecipient
	}
	if amt, ok := new(big.Int).SetString(cmd.Amount, 10); !ok || amt.Sign() < 0 {
		return entities.Invoice{}, ErrInvalidInvoiceAmount
	}
	ttl := cmd.TTL
	if ttl == 0 {
		ttl = DefaultInvoiceTTL
	}
	if ttl < 0 {
		return entities.Invoice{}, ErrInvalidInvoiceTTL
	}
	if u.signer == nil {
		log.Printf("[invoice][usecase] signer not configured")
		return entities.Invoice{}, errors.New("invoice signer not configured")
	}
	if u.repo == nil {
		log.Printf("[invoice][usecase] repository not configured")
		return entities.Invoice{}, errors.New("invoice repository not configured")
	}

	inv := entities.Invoice{
		ID:       uuid.NewString(),
		Version:  entities.InvoiceSchemaVersion,
		Network:  strings.TrimSpace(cmd.Network),
		Token:    strings.TrimSpace(cmd.Token),
		Decimals: cmd.Decimals,
		To:       cmd.To,
		Amount:   cmd.Amount,
		Memo:     cmd.Memo,
		Nonce:    uuid.NewString(),
		Expiry:   u.now().UTC().Add(ttl).Unix(),
	}

	sig, err := u.signer.SignInvoice(inv)
	if err != nil {
		log.Printf("[invoice][usecase] signing failed id=%s err=%v", inv.ID, err)
		return entities.Invoice{}, err
	}
	inv.Signature = sig

	created, err := u.repo.Create(ctx, inv)
	if err != nil {
		log.Printf("[invoice][usecase] repository create failed id=%s err=%v", inv.ID, err)
		return entities.Invoice{}, err
	}
	log.Printf("[invoice][usecase] issue success id=%s nonce=%s exp=%d", created.ID, created.Nonce, created.Expiry)
	return created, nil
}

func (u *InvoiceUseCase) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Invoice{}, ErrInvalidInvoiceID
	}

	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.ID == "" {
		return entities.Invoice{}, interfaces.ErrInvoiceNotFound
	}
	return inv, nil
}
