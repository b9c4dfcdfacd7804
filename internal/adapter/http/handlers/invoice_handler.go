package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	request "tapinvoice/internal/adapter/http/dto/request"
	response "tapinvoice/internal/adapter/http/dto/response"
	"tapinvoice/internal/infrastructure/metrics"
	"tapinvoice/internal/usecase"
	"tapinvoice/internal/usecase/interfaces"
	"tapinvoice/pkg"

	"github.com/gin-gonic/gin"
)

// invoiceCacheControl allows public caching of served invoices for a short
// window; invoices are immutable so the only staleness risk is expiry, which
// clients re-check locally.
const invoiceCacheControl = "public, max-age=300"

var errInvalidIssuePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)

// InvoiceHandler handles HTTP requests for payment invoices.
type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// GetInvoiceByID serves a single invoice: GET /i/{id}.
func (h *InvoiceHandler) GetInvoiceByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	log.Printf("[invoice][handler] get start id=%s", id)
	if id == "" {
		metrics.InvoicesServed.WithLabelValues("invalid").Inc()
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing or malformed invoice id", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	inv, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[invoice][handler] get failed id=%s err=%v", id, err)
		appErr := mapInvoiceError(err)
		switch appErr.HTTPStatus {
		case http.StatusNotFound:
			metrics.InvoicesServed.WithLabelValues("not_found").Inc()
		case http.StatusBadRequest:
			metrics.InvoicesServed.WithLabelValues("invalid").Inc()
		default:
			metrics.InvoicesServed.WithLabelValues("error").Inc()
		}
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] get success id=%s nonce=%s", id, inv.Nonce)

	metrics.InvoicesServed.WithLabelValues("ok").Inc()
	c.Header("Cache-Control", invoiceCacheControl)
	c.JSON(http.StatusOK, response.FromInvoice(inv))
}

// IssueInvoice creates a signed, time-bounded invoice: POST /i.
func (h *InvoiceHandler) IssueInvoice(c *gin.Context) {
	var payload request.IssueInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[invoice][handler] issue invalid payload err=%v", err)
		c.JSON(errInvalidIssuePayload.HTTPStatus, errInvalidIssuePayload.ToHTTPError())
		return
	}

	inv, err := h.usecase.Issue(c.Request.Context(), usecase.IssueInvoiceCommand{
		Network:  payload.Network,
		Token:    payload.Token,
		Decimals: payload.Decimals,
		To:       payload.To,
		Amount:   payload.Amount,
		Memo:     payload.Memo,
		TTL:      payload.TTL(),
	})
	if err != nil {
		log.Printf("[invoice][handler] issue failed err=%v", err)
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[invoice][handler] issue success id=%s nonce=%s exp=%d", inv.ID, inv.Nonce, inv.Expiry)

	metrics.InvoicesIssued.Inc()
	c.JSON(http.StatusCreated, response.FromIssuedInvoice(inv))
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Missing or malformed invoice id", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidRecipient),
		errors.Is(err, usecase.ErrInvalidInvoiceAmount),
		errors.Is(err, usecase.ErrInvalidInvoiceTTL),
		errors.Is(err, usecase.ErrInvalidTokenDecimals),
		errors.Is(err, usecase.ErrInvalidInvoiceNetwork),
		errors.Is(err, usecase.ErrInvalidInvoiceToken):
		return pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)
	case errors.Is(err, interfaces.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
