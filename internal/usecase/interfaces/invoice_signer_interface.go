package interfaces

import "tapinvoice/internal/domain/entities"

// IInvoiceSigner signs the canonical encoding of an invoice (all fields
// except sig) on behalf of the issuer and returns the signature as a
// 0x-prefixed hex string.
type IInvoiceSigner interface {
	SignInvoice(inv entities.Invoice) (string, error)
}

// ISignatureVerifier checks an invoice signature against the expected issuer.
// Callers must fail closed: a non-nil error means the invoice is invalid,
// the same as a false result.
type ISignatureVerifier interface {
	VerifyInvoice(inv entities.Invoice) (bool, error)
}
