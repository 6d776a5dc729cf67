package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "lh_session"
	CtxClaimsKey  = "auth_claims"
)

// RequireUser gates server-rendered pages: anonymous visitors are sent
// to the login page rather than handed a JSON error.
func RequireUser(tokens TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(SessionCookie)
		if err != nil || raw == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// RequireRole must run after RequireUser. A logged-in user with the
// wrong role gets bounced to the catalog instead of seeing an error.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := MustGetClaims(c)
		if claims == nil || claims.Role != role {
			c.Redirect(http.StatusSeeOther, "/catalog")
			c.Abort()
			return
		}
		c.Next()
	}
}

func MustGetClaims(c *gin.Context) *Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*Claims)
	return claims
}
