package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie carries the signed session token, HTTP-only.
	SessionCookie = "plasco_session"

	ctxPrincipalKey = "principal"
)

// Middleware rejects requests that do not carry a valid session token.
// The token is read from the session cookie, with an Authorization
// bearer header as fallback for non-browser clients.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			tokenStr = bearerToken(c.GetHeader("Authorization"))
		}
		if tokenStr == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		c.Set(ctxPrincipalKey, &Principal{
			ID:       claims.UserID,
			Name:     claims.Name,
			Username: claims.Username,
		})
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal set by Middleware.
func PrincipalFrom(c *gin.Context) (*Principal, bool) {
	v, ok := c.Get(ctxPrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*Principal)
	return p, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "احراز هویت ناموفق"})
}
