package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kengraphic/tujengane-sacco/internal/domain"
	a "github.com/kengraphic/tujengane-sacco/pkg/auth"
)

const sessionKey = "session"

// RevocationChecker is the read side of the sign-out store.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// JWTAuth validates the bearer token, rejects revoked ones, and stashes an
// explicit Session for the handlers.
func JWTAuth(secret string, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok := strings.TrimPrefix(h, "Bearer ")
		claims, err := a.ParseValidate(secret, tok)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		// refresh tokens only buy a new pair at /auth/refresh, never
		// authenticate a request themselves
		if claims.Use == a.UseRefresh {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if gone, err := revoked.IsRevoked(c.Request.Context(), claims.ID); err != nil || gone {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		sess := domain.Session{
			UserID:    claims.Sub,
			Email:     claims.Email,
			Role:      claims.Role,
			TokenID:   claims.ID,
			RefreshID: claims.RefreshID,
		}
		if claims.ExpiresAt != nil {
			sess.ExpiresAt = claims.ExpiresAt.Time
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if _, ok := allowed[sess.Role]; !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// SessionFrom returns the caller set by JWTAuth; zero Session outside it.
func SessionFrom(c *gin.Context) domain.Session {
	v, _ := c.Get(sessionKey)
	sess, _ := v.(domain.Session)
	return sess
}
