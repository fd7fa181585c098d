package api

import (
	"errors"
	"net/http"

	"storeit/storage-api/model"
	"storeit/storage-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type signInBody struct {
	Email string `json:"email"`
}

// AuthSignIn dispatches an OTP to an already registered email. Unknown
// emails get a 404 instead of a silent profile creation.
func (a *API) AuthSignIn(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data signInBody
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

	var user model.User

	err := a.DB.Where("email = ?", data.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user by email", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.issueOTP(user.AccountID, user.Email); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Failed to send an OTP",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue OTP", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountId": user.AccountID,
	})
}
