package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	customerpkg "github.com/mikios34/choonpaan/customer"
)

// CustomerHandler bundles dependencies for the manage-users HTTP handlers.
type CustomerHandler struct {
	service customerpkg.CustomerService
	timeout time.Duration
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(svc customerpkg.CustomerService, timeout time.Duration) *CustomerHandler {
	return &CustomerHandler{service: svc, timeout: timeout}
}

// ListCustomers lists customers, filtered by the optional q parameter.
func (h *CustomerHandler) ListCustomers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		customers, err := h.service.ListCustomers(ctx, c.Query("q"))
		if err != nil {
			writeError(c, "failed to list users", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": customers, "count": len(customers)})
	}
}

func (h *CustomerHandler) DeleteCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		if err := h.service.DeleteCustomer(ctx, c.Param("id")); err != nil {
			writeError(c, "failed to delete user", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Report returns the filtered user roster as a PDF attachment.
func (h *CustomerHandler) Report() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		var buf bytes.Buffer
		if err := h.service.Report(ctx, c.Query("q"), &buf); err != nil {
			writeError(c, "failed to generate the PDF", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="UserReport.pdf"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
