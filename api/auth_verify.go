package api

import (
	"errors"
	"net/http"
	"time"

	"storeit/storage-api/model"
	"storeit/storage-api/pkg/middleware"
	"storeit/storage-api/util"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type verifyBody struct {
	AccountID string `json:"accountId"`
	Password  string `json:"password"`
}

// AuthVerify trades a correct one-time passcode for a session. The code
// is burned inside the same transaction the check runs in, so it can't
// be replayed.
func (a *API) AuthVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data verifyBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.AccountID == "" || data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Account ID and OTP can't be empty",
			"requestID": requestID,
		})
		return
	}

	var session *model.Session

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		var token model.OTPToken

		err := tx.
			Where("account_id = ? AND code = ? AND used = ?", data.AccountID, data.Password, false).
			Order("created_at desc").
			First(&token).
			Error
		if err != nil {
			return err
		}

		if token.ExpiresAt.Before(time.Now()) {
			return gorm.ErrRecordNotFound
		}

		now := time.Now()
		err = tx.Model(&model.OTPToken{}).
			Where("id = ?", token.ID).
			Updates(map[string]any{
				"used":    true,
				"used_at": now,
			}).Error
		if err != nil {
			return err
		}

		sessionID, err := gonanoid.New()
		if err != nil {
			return err
		}

		secret, err := util.GenerateSecret(32)
		if err != nil {
			return err
		}

		ttl := time.Duration(viper.GetInt("session.ttl_hours")) * time.Hour
		session = &model.Session{
			ID:        sessionID,
			AccountID: data.AccountID,
			Secret:    secret,
			ExpiresAt: now.Add(ttl),
		}

		return tx.Create(session).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired OTP",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to verify OTP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, session.Secret, maxAge, "/", "",
		viper.GetBool("host.ssl.enabled"), true)

	c.JSON(http.StatusOK, gin.H{
		"sessionId": session.ID,
	})
}
