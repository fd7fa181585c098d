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

type shareBody struct {
	Emails []string `json:"emails"`
}

// FileShare replaces a file's shared-user list wholesale. No merge, no
// de-duplication, an empty list unshares the file.
func (a *API) FileShare(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fileID := c.Param("id")

	var data shareBody
	if err := c.BindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.EmailListValidator(data.Emails); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var file model.File

	err := a.DB.
		Where("owner_id = ? AND id = ?", userID, fileID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found. It either doesn't exist or you don't own it",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch file from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	previous := file.Users
	file.Users = model.StringSlice(data.Emails)

	err = a.DB.
		Model(&file).
		Update("users", file.Users).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update shared users", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.Cache.Invalidate(userID)

	// Added and removed recipients see the change immediately too
	affected := append(append([]string{}, previous...), data.Emails...)
	if len(affected) > 0 {
		var ids []string

		err := a.DB.
			Model(model.User{}).
			Where("email IN ?", affected).
			Pluck("id", &ids).
			Error
		if err != nil {
			zap.L().Error("Failed to resolve shared users for cache invalidation",
				zap.Error(err), zap.String("requestID", requestID))
		}

		for _, id := range ids {
			a.Cache.Invalidate(id)
		}
	}

	c.JSON(http.StatusOK, file)
}
