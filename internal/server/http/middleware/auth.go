package middleware

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/freightdesk/internal/domain/model"
	pkgAuth "github.com/polkiloo/freightdesk/internal/pkg/auth"
	"github.com/polkiloo/freightdesk/internal/usecase"
)

const (
	// ActorContextKey is a gin context key for the authenticated usecase.Actor.
	ActorContextKey = "actor"
	authCookieName  = "freightdesk_token"
)

// TokenParser resolves a bearer token to the caller.
type TokenParser interface {
	ParseToken(token string) (usecase.Actor, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		actor, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(ActorContextKey, actor)
		c.Next()
	}
}

// RoleRequired lets through only actors holding one of roles. It must run after AuthRequired.
func RoleRequired(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !slices.Contains(roles, actor.Role) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// ActorFrom returns the actor stored by AuthRequired.
func ActorFrom(c *gin.Context) (usecase.Actor, bool) {
	val, ok := c.Get(ActorContextKey)
	if !ok {
		return usecase.Actor{}, false
	}
	actor, ok := val.(usecase.Actor)
	return actor, ok
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	// browsers cannot set headers on a websocket upgrade
	if c.IsWebsocket() {
		return c.Query("token")
	}
	return ""
}

// SetAuthCookie writes auth token cookie to response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
