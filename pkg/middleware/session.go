package middleware

import (
	"errors"
	"net/http"

	"storeit/storage-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SessionCookie carries the opaque session secret. httpOnly, strict
// same-site, path=/ everywhere it is set.
const SessionCookie = "storeit_session"

// NewSessionMiddleware gates a route group behind a valid session
// cookie. On success the resolved profile is exposed as userID,
// userEmail and accountID on the request context.
func NewSessionMiddleware(d *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		secret, err := c.Cookie(SessionCookie)
		if err != nil || secret == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "No active session. Please log in",
				"requestID": requestID,
			})
			return
		}

		var session model.Session

		err = d.Where("secret = ?", secret).First(&session).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "Session expired or invalid. Please log in again",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up session", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if session.Expired() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Session expired or invalid. Please log in again",
				"requestID": requestID,
			})
			return
		}

		var user model.User

		err = d.Where("account_id = ?", session.AccountID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A session without a profile behind it is as good as
				// no session at all
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":     "No user found for this session",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to resolve session user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", user.ID)
		c.Set("userEmail", user.Email)
		c.Set("accountID", session.AccountID)
		c.Next()
	}
}
