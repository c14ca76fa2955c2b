package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-booking/internal/auth"
	"clinic-booking/internal/model"
	"clinic-booking/internal/session"
)

const identityKey = "identity"

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session"

// Identify resolves the session token (cookie or Authorization header)
// to an Identity and stores it in the request context. It never aborts;
// anonymous requests simply carry no identity. Gating is done by
// RequireAuth / RequireRole.
func Identify(secret string, revoker session.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			c.Next()
			return
		}

		claims, err := auth.ParseSessionToken(raw, secret)
		if err != nil {
			c.Next()
			return
		}

		revoked, err := revoker.IsRevoked(claims.ID)
		if err != nil {
			// revocation backend down: fail closed
			slog.Error("revocation check failed", "err", err)
			c.Next()
			return
		}
		if revoked {
			c.Next()
			return
		}

		c.Set(identityKey, &auth.Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// IdentityFrom returns the authenticated identity, or nil for an
// anonymous request.
func IdentityFrom(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*auth.Identity)
	return id
}

// RequireAuth aborts anonymous requests with 401. Must run after
// Identify.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireAuthenticated(IdentityFrom(c)); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in to access this page"})
			return
		}
		c.Next()
	}
}

// RequireRole aborts requests whose identity does not carry exactly the
// given role. No hierarchy; must run after Identify.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if err := auth.RequireRole(id, role); err != nil {
			if id == nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in to access this page"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied: insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequestLog logs one line per request with method, route, status and
// latency.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}
