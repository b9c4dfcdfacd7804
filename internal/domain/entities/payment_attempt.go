package entities

import "time"

// AttemptState represents the lifecycle of a payment attempt on a verified
// invoice: idle -> pending -> (success | failed). Failed is terminal for the
// attempt only; the user may trigger a new attempt from the same invoice.
type AttemptState string

const (
	AttemptStateIdle    AttemptState = "idle"
	AttemptStatePending AttemptState = "pending"
	AttemptStateSuccess AttemptState = "success"
	AttemptStateFailed  AttemptState = "failed"
)

// PaymentAttempt is the transient, in-memory record of the client's current
// action on an invoice. It is keyed by invoice nonce and never persisted;
// every retry starts from a clean idle state.
type PaymentAttempt struct {
	InvoiceNonce string
	State        AttemptState
	TxHash       string
	UpdatedAt    time.Time
}

// Receipt references a settled transaction returned by the settlement
// gateway.
type Receipt struct {
	Hash string `json:"hash"`
}
