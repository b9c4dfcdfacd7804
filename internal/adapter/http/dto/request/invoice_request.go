package request

import "time"

// IssueInvoiceRequest is the payload accepted by POST /i. Field names mirror
// the invoice wire shape; ttl_seconds is relative and converted to the
// absolute exp at issue time.
type IssueInvoiceRequest struct {
	Network    string `json:"net" binding:"required"`
	Token      string `json:"token" binding:"required"`
	Decimals   int    `json:"dec"`
	To         string `json:"to" binding:"required"`
	Amount     string `json:"amt" binding:"required"`
	Memo       string `json:"memo"`
	TTLSeconds int64  `json:"ttl_seconds"`
}

// TTL converts ttl_seconds into a duration; zero means "use the service
// default".
func (r IssueInvoiceRequest) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}
