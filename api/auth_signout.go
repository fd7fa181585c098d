package api

import (
	"net/http"

	"storeit/storage-api/model"
	"storeit/storage-api/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// AuthSignOut drops the server-side session and clears the cookie. The
// cookie goes away even when the row delete fails, a stale row only
// costs storage until it expires.
func (a *API) AuthSignOut(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if secret, err := c.Cookie(middleware.SessionCookie); err == nil {
		err := a.DB.
			Where("secret = ?", secret).
			Delete(&model.Session{}).
			Error
		if err != nil {
			zap.L().Error("Failed to delete session", zap.Error(err), zap.String("requestID", requestID))
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "",
		viper.GetBool("host.ssl.enabled"), true)

	c.Status(http.StatusOK)
}
