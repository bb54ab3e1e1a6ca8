package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	authpkg "github.com/mikios34/choonpaan/auth"
	"github.com/mikios34/choonpaan/entity"
	"github.com/mikios34/choonpaan/session"
)

// Context keys set by the middlewares in this package.
const (
	KeyUserID    = "user_id"
	KeyRole      = "role"
	KeyEmail     = "email"
	KeySessionID = "session_id"
	KeySession   = "session"
)

// SessionScopes returns the session manager for a server-issued session id.
type SessionScopes interface {
	ScopedSessions(sessionID string) *session.Manager
}

func bearer(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") || len(h) <= len("Bearer ") {
		return "", false
	}
	return h[len("Bearer "):], true
}

// RequireAuth validates the Bearer JWT and places its claims into context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}
		claims, err := authpkg.ParseAndValidate(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyRole, claims.Role)
		c.Set(KeyEmail, claims.Email)
		c.Set(KeySessionID, claims.SessionID)
		c.Next()
	}
}

// RequireSession restores the persisted session named by the token. Routing
// follows the restored state, not the token claims, so a logged-out session
// is rejected even while its token is unexpired.
func RequireSession(scopes SessionScopes) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString(KeySessionID)
		if sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}
		st, err := scopes.ScopedSessions(sid).Restore(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable", "detail": err.Error()})
			return
		}
		if st == nil || st.UserID != c.GetString(KeyUserID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session ended"})
			return
		}
		c.Set(KeySession, *st)
		c.Set(KeyRole, string(st.Role))
		c.Next()
	}
}

// RequireRoles ensures the authenticated principal has one of the allowed roles.
func RequireRoles(allowedRoles ...entity.Role) gin.HandlerFunc {
	roleSet := map[string]struct{}{}
	for _, r := range allowedRoles {
		roleSet[string(r)] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		if _, ok := roleSet[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
			return
		}
		c.Next()
	}
}

// SessionState returns the state placed by RequireSession.
func SessionState(c *gin.Context) (entity.SessionState, bool) {
	v, ok := c.Get(KeySession)
	if !ok {
		return entity.SessionState{}, false
	}
	st, ok := v.(entity.SessionState)
	return st, ok
}
