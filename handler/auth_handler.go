package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountpkg "github.com/mikios34/choonpaan/account"
	authpkg "github.com/mikios34/choonpaan/auth"
	mw "github.com/mikios34/choonpaan/middleware"
	"github.com/mikios34/choonpaan/session"
)

// SessionRegistry opens and releases server-issued session scopes.
type SessionRegistry interface {
	mw.SessionScopes
	Open(ctx context.Context, sessionID string) (*session.Manager, error)
	Release(ctx context.Context, sessionID string) error
}

type AuthHandler struct {
	service  accountpkg.Service
	sessions SessionRegistry
	secret  string
	ttl     time.Duration
	timeout time.Duration
}

func NewAuthHandler(svc accountpkg.Service, sessions SessionRegistry, secret string, ttl, timeout time.Duration) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, secret: secret, ttl: ttl, timeout: timeout}
}

// Register creates the principal and its profile record. It does not log in.
func (h *AuthHandler) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var form accountpkg.RegisterForm
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		res, err := h.service.Register(ctx, form)
		if err != nil {
			writeError(c, "registration failed", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"principal": res.Principal, "profile": res.Record})
	}
}

// Login signs in with email and password and issues a token bound to a new
// server-side session.
func (h *AuthHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds accountpkg.Credentials
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload", "detail": err.Error()})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		sid, sessions, ok := h.open(ctx, c)
		if !ok {
			return
		}
		res, err := h.service.Login(ctx, sessions, creds)
		if err != nil {
			h.release(ctx, sid)
			writeError(c, "login failed", err)
			return
		}
		h.issue(c, sid, res)
	}
}

// Token exchanges a verified Firebase ID token for a session token. It runs
// behind RequireFirebaseAuth.
func (h *AuthHandler) Token() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := mw.FirebasePrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing firebase identity"})
			return
		}
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		sid, sessions, ok := h.open(ctx, c)
		if !ok {
			return
		}
		res, err := h.service.Establish(ctx, sessions, p)
		if err != nil {
			h.release(ctx, sid)
			writeError(c, "token exchange failed", err)
			return
		}
		h.issue(c, sid, res)
	}
}

// open starts a new session scope that expires with the token.
func (h *AuthHandler) open(ctx context.Context, c *gin.Context) (string, *session.Manager, bool) {
	sid := uuid.NewString()
	sessions, err := h.sessions.Open(ctx, sid)
	if err != nil {
		log.Printf("auth: opening session: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable", "detail": err.Error()})
		return "", nil, false
	}
	return sid, sessions, true
}

func (h *AuthHandler) release(ctx context.Context, sid string) {
	if err := h.sessions.Release(ctx, sid); err != nil {
		log.Printf("auth: releasing session %s: %v", sid, err)
	}
}

func (h *AuthHandler) issue(c *gin.Context, sid string, res *accountpkg.LoginResult) {
	st := res.State
	token, err := authpkg.SignJWT(h.secret, st.UserID, string(st.Role), st.UserEmail, sid, h.ttl)
	if err != nil {
		log.Printf("auth: signing token for %s: %v", st.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.ttl.Seconds()),
		"session":    st,
		"profile":    res.Resolution.Record,
	})
}

// Logout ends the session named by the token. Logging out again with the
// same token fails at RequireSession.
func (h *AuthHandler) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetString(mw.KeySessionID)
		sess := authpkg.NewSession(authpkg.Principal{
			ID:    c.GetString(mw.KeyUserID),
			Email: c.GetString(mw.KeyEmail),
		})
		ctx, cancel := requestContext(c, h.timeout)
		defer cancel()
		if err := h.service.Logout(ctx, h.sessions.ScopedSessions(sid), sess); err != nil {
			writeError(c, "logout failed", err)
			return
		}
		h.release(ctx, sid)
		c.JSON(http.StatusOK, gin.H{"message": "logged out"})
	}
}

// Session returns the restored session state.
func (h *AuthHandler) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := mw.SessionState(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": st})
	}
}
