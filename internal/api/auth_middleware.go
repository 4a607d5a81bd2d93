package api

import (
	"net/http"
	"os"
	"time"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/gin-gonic/gin"
)

// setSessionCookie sets the session cookie; SESSION_SECURE_COOKIE=1 marks it Secure.
func setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure := os.Getenv(constants.EnvSessionSecureCookie) == "1"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieSessionName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(constants.CookieSessionName, "", -1, "/", "", false, true)
}

// AuthRequired validates the session cookie and injects the trainer's
// identity into the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(constants.CookieSessionName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrAuthRequired})
			return
		}
		claims, err := parseSessionToken(token, time.Now())
		if err != nil {
			clearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{constants.JSONKeyError: constants.ErrInvalidSession})
			return
		}
		c.Set(constants.CtxUserEmail, claims.Sub)
		c.Set(constants.CtxUserName, claims.Name)
		c.Next()
	}
}
