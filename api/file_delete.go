package api

import (
	"errors"
	"net/http"

	"storeit/storage-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileDelete removes the metadata row and then the stored object, in
// that order. The two steps aren't transactional: an object-delete
// failure after the row is gone leaves an orphaned object, which is
// logged and surfaced.
func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fileID := c.Param("id")

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

	err = a.DB.
		Where("id = ?", file.ID).
		Delete(&model.File{}).
		Error
	if err != nil {
		// The object stays and so does the cache, nothing changed
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file record", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err = a.Store.Delete(c.Request.Context(), file.BucketFileID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete stored object, it is now orphaned",
			zap.Error(err), zap.String("bucketFileId", file.BucketFileID), zap.String("requestID", requestID))
		return
	}

	a.Cache.Invalidate(userID)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
	})
}
