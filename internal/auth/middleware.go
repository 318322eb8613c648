package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"grocerystore/internal/domain/account"
	"grocerystore/internal/session"
)

const CtxAccountIDKey = "account_id"
const CtxRoleKey = "role"
const CtxSessionKey = "session"

func AuthMiddleware(jwtMgr *JWTManager, sessions *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimPrefix(h, "Bearer ")
		claims, err := jwtMgr.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}
		// A valid token whose session was dropped (logout, expiry) is dead.
		s, ok := sessions.Get(claims.SessionID)
		if !ok || s.AccountID != claims.AccountID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Set(CtxAccountIDKey, claims.AccountID)
		c.Set(CtxRoleKey, claims.Role)
		c.Set(CtxSessionKey, s)
		c.Next()
	}
}

func RequireRole(role account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, _ := c.Get(CtxRoleKey)
		if rv, ok := r.(account.Role); !ok || rv != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// SessionFrom pulls the live session the middleware resolved.
func SessionFrom(c *gin.Context) *session.Session {
	v, _ := c.Get(CtxSessionKey)
	s, _ := v.(*session.Session)
	return s
}

// AccountIDFrom pulls the authenticated account ID.
func AccountIDFrom(c *gin.Context) int64 {
	v, _ := c.Get(CtxAccountIDKey)
	id, _ := v.(int64)
	return id
}

// RoleFrom pulls the authenticated role.
func RoleFrom(c *gin.Context) account.Role {
	v, _ := c.Get(CtxRoleKey)
	r, _ := v.(account.Role)
	return r
}
