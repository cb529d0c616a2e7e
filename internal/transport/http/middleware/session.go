package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"gigboard/internal/pkg/jwtutil"
	"gigboard/internal/session"
	"gigboard/internal/transport/http/response"
)

const identityKey = "auth_identity"

// Identity is the authenticated caller, resolved once per request and
// threaded to handlers through the gin context. Handlers never consult
// ambient session state themselves.
type Identity struct {
	UserID    uint
	Username  string
	SessionID string
}

// SessionAuth admits a request only when it carries a token whose session
// record is still present in the store. A parseable token whose record was
// deleted (logout, expiry) is rejected the same as no token at all.
func SessionAuth(secret string, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.Error(c, 401, response.CodeUnauthorized, "missing authorization header")
			c.Abort()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(authHeader, prefix) {
			response.Error(c, 401, response.CodeUnauthorized, "invalid authorization scheme")
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			response.Error(c, 401, response.CodeUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		rec, err := sessions.Get(c.Request.Context(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				response.Error(c, 401, response.CodeUnauthorized, "session expired or revoked")
			} else {
				response.Error(c, 500, response.CodeInternalServer, "session lookup failed")
			}
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			UserID:    rec.UserID,
			Username:  rec.Username,
			SessionID: rec.ID,
		})
		c.Next()
	}
}

func IdentityFromContext(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
