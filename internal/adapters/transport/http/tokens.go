package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidora/vidora/internal/domain/model"
)

// issueTokens delivers the pair both ways: JSON for API clients and
// HTTP-only cookies for browsers. The refresh cookie is Strict so it
// never rides along on cross-site requests.
func issueTokens(c *gin.Context, pair model.TokenPair, domain string, extra gin.H) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		"access_token",
		pair.AccessToken,
		int(pair.AccessTTL.Seconds()),
		"/",
		domain,
		true,
		true,
	)

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		"refresh_token",
		pair.RefreshToken,
		int(pair.RefreshTTL.Seconds()),
		"/",
		domain,
		true,
		true,
	)

	body := gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
		"expiresIn":    int(pair.AccessTTL.Seconds()),
		"userId":       pair.UserID.String(),
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func clearTokens(c *gin.Context, domain string) {
	c.SetCookie("access_token", "", -1, "/", domain, true, true)
	c.SetCookie("refresh_token", "", -1, "/", domain, true, true)
}
