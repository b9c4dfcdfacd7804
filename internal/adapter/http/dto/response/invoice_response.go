package response

import "tapinvoice/internal/domain/entities"

// InvoiceResponse is the GET /i/{id} body: exactly the wire field names
// v, net, token, dec, to, amt, memo, nonce, exp, sig (memo optional).
type InvoiceResponse struct {
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

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	return InvoiceResponse{
		Version:   inv.Version,
		Network:   inv.Network,
		Token:     inv.Token,
		Decimals:  inv.Decimals,
		To:        inv.To,
		Amount:    inv.Amount,
		Memo:      inv.Memo,
		Nonce:     inv.Nonce,
		Expiry:    inv.Expiry,
		Signature: inv.Signature,
	}
}

// IssuedInvoiceResponse is returned by POST /i; the id is what payers put in
// the GET /i/{id} path.
type IssuedInvoiceResponse struct {
	ID      string          `json:"id"`
	Invoice InvoiceResponse `json:"invoice"`
}

func FromIssuedInvoice(inv entities.Invoice) IssuedInvoiceResponse {
	return IssuedInvoiceResponse{ID: inv.ID, Invoice: FromInvoice(inv)}
}
