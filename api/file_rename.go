package api

import (
	"errors"
	"net/http"
	"strings"

	"storeit/storage-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type renameBody struct {
	Name      string `json:"name"`
	Extension string `json:"extension"`
}

// FileRename sets a file's name to `name.extension`. Only the name
// column changes, the stored object keeps its key.
func (a *API) FileRename(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fileID := c.Param("id")

	var data renameBody
	if err := c.BindJSON(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	if strings.TrimSpace(data.Name) == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No new name provided",
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

	file.Name = data.Name + "." + data.Extension

	err = a.DB.
		Model(&file).
		Update("name", file.Name).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to rename file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.Cache.Invalidate(userID)

	c.JSON(http.StatusOK, file)
}
