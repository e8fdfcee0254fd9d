package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
)

// AuthRequired validates the bearer token and injects the trainer identity
// into the context.
func AuthRequired() gin.HandlerFunc { return authenticate(false) }

// AuthRequiredOrQuery behaves like AuthRequired but also accepts the token
// in the access_token query parameter. It is meant for websocket upgrades.
func AuthRequiredOrQuery() gin.HandlerFunc { return authenticate(true) }

func authenticate(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" && allowQuery {
			token = c.Query(constants.QueryAccessToken)
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseAndValidateSession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidToken})
			return
		}
		c.Set(constants.CtxUserID, claims.Sub)
		c.Set(constants.CtxUserName, claims.Name)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader(constants.HeaderAuthorization)
	if !strings.HasPrefix(h, constants.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, constants.BearerPrefix))
}

func currentUserID(c *gin.Context) string { return c.GetString(constants.CtxUserID) }
