package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	adminpkg "github.com/mikios34/choonpaan/admin"
	authpkg "github.com/mikios34/choonpaan/auth"
	driverpkg "github.com/mikios34/choonpaan/driver"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/media"
	"github.com/mikios34/choonpaan/role"
	"github.com/mikios34/choonpaan/store"
)

// DefaultTimeout bounds each request when a handler is built without one.
const DefaultTimeout = 10 * time.Second

func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

// writeError maps a service error onto a status and a JSON body. summary is
// used for failures that have no more specific message.
func writeError(c *gin.Context, summary string, err error) {
	var (
		ve *entity.ValidationError
		ae *authpkg.Error
		se *store.Error
		ue *media.UploadError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field, "kind": ve.Kind})
	case errors.As(err, &ae):
		switch ae.Kind {
		case authpkg.KindInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials", "detail": ae.Error()})
		case authpkg.KindNetwork:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "identity provider unavailable", "detail": ae.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": summary, "detail": ae.Error()})
		}
	case errors.Is(err, role.ErrRoleNotFound):
		c.JSON(http.StatusForbidden, gin.H{"error": "role_not_found", "detail": "User data not found"})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, driverpkg.ErrDriverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "detail": err.Error()})
	case errors.Is(err, store.ErrInvalidKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id", "detail": err.Error()})
	case errors.Is(err, adminpkg.ErrAdminExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &ue):
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed", "detail": ue.Error()})
	case errors.As(err, &se) && se.Kind == store.KindNetwork,
		errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "record store unavailable", "detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": summary, "detail": err.Error()})
	}
}
