package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storeit/storage-api/model"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileServe streams a stored object. The /view variant renders inline,
// /download forces an attachment under the file's current name. URLs
// carry no signature, matching how they are handed out.
func (a *API) FileServe(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	if c.Param("bucketID") != viper.GetString("aws.bucket") {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "Unknown bucket",
			"requestID": requestID,
		})
		return
	}

	bucketFileID := c.Param("fileID")

	var file model.File

	err := a.DB.
		Where("bucket_file_id = ?", bucketFileID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if file exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	body, size, contentType, err := a.Store.Get(c.Request.Context(), bucketFileID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch object from storage",
			zap.Error(err), zap.String("bucketFileId", bucketFileID), zap.String("requestID", requestID))
		return
	}
	defer body.Close()

	headers := map[string]string{}
	if strings.HasSuffix(c.FullPath(), "/download") {
		headers["Content-Disposition"] = fmt.Sprintf("attachment; filename=%q", file.Name)
	}

	c.DataFromReader(http.StatusOK, size, contentType, body, headers)
}
