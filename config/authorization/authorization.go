package authorization

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"MetOptix/config/jwt"
	"MetOptix/config/redis"
	"MetOptix/models"
	"MetOptix/role"
	"MetOptix/util"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

type ctxKey struct{}

func WithSession(ctx context.Context, s *models.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func SessionFromContext(ctx context.Context) *models.Session {
	s, _ := ctx.Value(ctxKey{}).(*models.Session)
	return s
}

// SessionFrom returns the session JWTAuth attached to the request, or nil before the gate.
func SessionFrom(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*models.Session)
	return s
}

func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

/*
* Read the bearer token and validate it
* Reject tokens that were revoked by logout
* Attach the session to the gin context and the request context
 */
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.NOT_AUTHENTICATED)))
			return
		}
		session, err := jwt.ParseToken(secret, token)
		if err != nil {
			log.Println("Error from parseToken:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.NOT_AUTHENTICATED)))
			return
		}
		revoked, err := redis.Exists(c.Request.Context(), util.RevokedTokenKey+session.TokenID)
		if err != nil {
			log.Println("Error checking token revocation:", err)
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.SESSION_REVOKED)))
			return
		}
		c.Set(sessionKey, session)
		c.Request = c.Request.WithContext(WithSession(c.Request.Context(), session))
		c.Next()
	}
}

func Authorize(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFrom(c)
		if !session.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, util.FailedResponse(errors.New(util.NOT_AUTHENTICATED)))
			return
		}
		if !role.HasAccess(session.Role, resource, action) {
			log.Printf("User %s (%s) denied %s on %s", session.Username, session.Role, action, resource)
			c.AbortWithStatusJSON(http.StatusForbidden, util.FailedResponse(errors.New(util.ACCESS_DENIED)))
			return
		}
		c.Next()
	}
}
