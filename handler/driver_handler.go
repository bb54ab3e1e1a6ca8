package api

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	driverpkg "github.com/mikios34/choonpaan/driver"
)

// DriverHandler serves the manage-drivers endpoints.
type DriverHandler struct {
	service driverpkg.DriverService
	timeout time.Duration
}

func NewDriverHandler(svc driverpkg.DriverService, timeout time.Duration) *DriverHandler {
	return &DriverHandler{service: svc, timeout: timeout}
}

// RegisterRoutes registers driver endpoints on the provided router group.
func (h *DriverHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListDrivers())
	rg.POST("", h.CreateDriver())
	rg.GET("/report", h.Report())
	rg.PUT("/:id", h.UpdateDriver())
	rg.DELETE("/:id", h.DeleteDriver())
}

func (h *DriverHandler) ListDrivers() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		drivers, err := h.service.ListDrivers(ctx, c.Query("q"))
		if err != nil {
			writeError(c, "failed to list drivers", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"drivers": drivers, "count": len(drivers)})
	}
}

func (h *DriverHandler) CreateDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req driverpkg.DriverRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		created, err := h.service.CreateDriver(ctx, req)
		if err != nil {
			writeError(c, "failed to save driver", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"driver": created})
	}
}

func (h *DriverHandler) UpdateDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req driverpkg.DriverRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		updated, err := h.service.UpdateDriver(ctx, c.Param("id"), req)
		if err != nil {
			writeError(c, "failed to save driver", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"driver": updated})
	}
}

func (h *DriverHandler) DeleteDriver() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		if err := h.service.DeleteDriver(ctx, c.Param("id")); err != nil {
			writeError(c, "failed to delete driver", err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *DriverHandler) Report() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		var buf bytes.Buffer
		if err := h.service.Report(ctx, c.Query("q"), &buf); err != nil {
			writeError(c, "failed to generate the PDF", err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="DriverReport.pdf"`)
		c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	}
}
