package cookie

import (
	"github.com/gin-gonic/gin"
)

// Set by the identity provider's web front-end on the shared parent domain.
const AccessTokenCookieName = "access_token"

func GetAccessToken(c *gin.Context) string {
	token, _ := c.Cookie(AccessTokenCookieName)
	return token
}
