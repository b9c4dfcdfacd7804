package invoiceapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tapinvoice/internal/domain/entities"
	"tapinvoice/internal/usecase/interfaces"
)

const defaultFetchTimeout = 15 * time.Second

// Client fetches invoices from an invoice service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ interfaces.IInvoiceSource = (*Client)(nil)

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// FetchInvoice retrieves and decodes GET {base}/i/{id}. The returned invoice
// carries the requested id; everything else comes from the wire payload.
func (c *Client) FetchInvoice(ctx context.Context, id string) (entities.Invoice, error) {
	endpoint := c.baseURL + "/i/" + url.PathEscape(id)
	log.Printf("[invoiceapi][client] fetch start id=%s url=%s", id, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.Invoice{}, fmt.Errorf("build invoice request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return entities.Invoice{}, fmt.Errorf("%w: fetch %s: %v", interfaces.ErrFetchTimeout, id, err)
		}
		return entities.Invoice{}, fmt.Errorf("%w: fetch %s: %v", interfaces.ErrInvoiceNotFound, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The error envelope body is advisory; the status code decides.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.Printf("[invoiceapi][client] fetch failed id=%s status=%d", id, resp.StatusCode)
		return entities.Invoice{}, fmt.Errorf("%w: fetch %s: status %d", interfaces.ErrInvoiceNotFound, id, resp.StatusCode)
	}

	var inv entities.Invoice
	if err := json.NewDecoder(resp.Body).Decode(&inv); err != nil {
		return entities.Invoice{}, fmt.Errorf("%w: fetch %s: %v", interfaces.ErrInvoiceDecode, id, err)
	}
	inv.ID = id
	log.Printf("[invoiceapi][client] fetch success id=%s nonce=%s", id, inv.Nonce)
	return inv, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
