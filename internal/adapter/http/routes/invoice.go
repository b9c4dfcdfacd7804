package routes

import (
	"tapinvoice/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices = "/i"
)

func addInvoiceRoutes(router *gin.Engine, invoiceHandler *handlers.InvoiceHandler) {
	invoices := router.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.IssueInvoice)
		invoices.GET("/:id", invoiceHandler.GetInvoiceByID)
	}
}
