package entities

import (
	"errors"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSchemaVersion is the payload schema version stamped into the v field
// of every invoice issued by this service.
const InvoiceSchemaVersion = 1

var ErrInvalidAmount = errors.New("amount is not a non-negative integer string")

// Invoice is a signed, time-bounded request for payment of a fixed token
// amount to a fixed recipient on a fixed network.
//
// Wire shape (GET /i/{id} response body): exactly the JSON field names
// v, net, token, dec, to, amt, memo, nonce, exp, sig (memo optional).
//
// Amount representation:
//   - Amount is an integer string in the token's smallest unit. It is never
//     parsed with floating point on validation paths; DisplayAmount converts
//     it exactly for presentation only.
//
// Storage model (DynamoDB): PK id, immutable conditional put.
type Invoice struct {
	ID        string `json:"-"`
	Version   int    `json:"v"`
	Network   string `json:"net"`
	Token     string `json:"token"`
	Decimals  int    `json:"dec"`
	To        string `json:"to"`
	Amount    string `json:"amt"`
	Memo      string `json:"memo,omitempty"`
	Nonce     string `json:"nonce"`
	Expiry    int64  `json:"exp"`
	Signature string `json:"sig"`
}

// MissingFields reports which of the required fields (to, amt, exp, sig) are
// absent. An invoice missing any of them is structurally invalid and must
// never be presented as payable.
func (i Invoice) MissingFields() []string {
	var missing []string
	if i.To == "" {
		missing = append(missing, "to")
	}
	if i.Amount == "" {
		missing = append(missing, "amt")
	}
	if i.Expiry == 0 {
		missing = append(missing, "exp")
	}
	if i.Signature == "" {
		missing = append(missing, "sig")
	}
	return missing
}

// Expired reports whether the invoice is expired at the given instant.
// Expiry is an absolute unix-seconds deadline; the invoice is invalid at or
// after it.
func (i Invoice) Expired(now time.Time) bool {
	return now.Unix() >= i.Expiry
}

// AmountUnits parses Amount as a base-10 non-negative integer.
func (i Invoice) AmountUnits() (*big.Int, error) {
	n, ok := new(big.Int).SetString(i.Amount, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidAmount
	}
	return n, nil
}

// DisplayAmount returns the human-readable amount, amt / 10^dec, computed
// exactly. {amt: "1250000", dec: 6} renders as 1.25.
func (i Invoice) DisplayAmount() (decimal.Decimal, error) {
	units, err := i.AmountUnits()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return decimal.NewFromBigInt(units, -int32(i.Decimals)), nil
}
