package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	adminpkg "github.com/mikios34/choonpaan/admin"
)

// AdminHandler bundles dependencies for admin-related HTTP handlers.
type AdminHandler struct {
	service adminpkg.AdminService
	timeout time.Duration
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(svc adminpkg.AdminService, timeout time.Duration) *AdminHandler {
	return &AdminHandler{service: svc, timeout: timeout}
}

type registerAdminPayload struct {
	PrincipalID string `json:"principalId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
}

// RegisterAdmin grants admin to an existing principal.
func (h *AdminHandler) RegisterAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var p registerAdminPayload
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
			return
		}

		req := adminpkg.RegisterAdminRequest{
			PrincipalID: p.PrincipalID,
			Name:        p.Name,
			Email:       p.Email,
		}

		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		createdAdmin, err := h.service.RegisterAdmin(ctx, req)
		if err != nil {
			writeError(c, "failed to register admin", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"admin": createdAdmin})
	}
}
