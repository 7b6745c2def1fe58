package cookie

import (
	"github.com/gin-gonic/gin"
)

// Set by the identity service on the shared domain; read-only here.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
