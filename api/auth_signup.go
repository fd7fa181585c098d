package api

import (
	"errors"
	"net/http"
	"strings"

	"storeit/storage-api/model"
	"storeit/storage-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type signUpBody struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// AuthSignUp starts a login for a new or returning email. The profile is
// created at most once per email, every call dispatches a fresh OTP.
func (a *API) AuthSignUp(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signUpBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailValidator(data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	if strings.TrimSpace(data.FullName) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Full name can't be empty",
			"requestID": requestID,
		})
		return
	}

	var existing model.User

	err := a.DB.Where("email = ?", data.Email).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user by email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	accountID := existing.AccountID
	if accountID == "" {
		accountID, err = gonanoid.New()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate account ID", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	if err := a.issueOTP(accountID, data.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to send an OTP",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue OTP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// The profile is only created once the OTP went out, matching the
	// account-first ordering of the login flow
	if existing.ID == "" {
		userID, err := gonanoid.New()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate user ID", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		err = a.DB.Create(&model.User{
			ID:        userID,
			FullName:  data.FullName,
			Email:     data.Email,
			Avatar:    viper.GetString("app.avatar_url"),
			AccountID: accountID,
		}).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create user profile", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"accountId": accountID,
	})
}
