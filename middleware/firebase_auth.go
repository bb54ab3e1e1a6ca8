package middleware

import (
	"net/http"

	fbAuth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	authpkg "github.com/mikios34/choonpaan/auth"
)

// KeyFirebasePrincipal holds the auth.Principal of a verified ID token.
const KeyFirebasePrincipal = "firebase_principal"

// RequireFirebaseAuth verifies a Firebase ID token (Bearer) and stores the
// principal it names. A nil client means token exchange is not configured.
//
// Typical usage:
//
//	mw.RequireFirebaseAuth(app.TokenVerifier)
func RequireFirebaseAuth(client *fbAuth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "firebase auth not configured"})
			return
		}
		idToken, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			return
		}

		token, err := client.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired firebase token"})
			return
		}

		p := authpkg.Principal{ID: token.UID, IDToken: idToken}
		if email, ok := token.Claims["email"].(string); ok {
			p.Email = email
		}
		c.Set(KeyFirebasePrincipal, p)
		c.Next()
	}
}

// FirebasePrincipal returns the principal placed by RequireFirebaseAuth.
func FirebasePrincipal(c *gin.Context) (authpkg.Principal, bool) {
	v, ok := c.Get(KeyFirebasePrincipal)
	if !ok {
		return authpkg.Principal{}, false
	}
	p, ok := v.(authpkg.Principal)
	return p, ok
}
