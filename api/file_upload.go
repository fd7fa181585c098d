package api

import (
	"context"
	"net/http"
	"strings"

	"storeit/storage-api/model"
	"storeit/storage-api/util"
	"storeit/storage-api/validators"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

// FileUpload stores the uploaded binary as a bucket object and records
// its metadata. The object write goes first; if the metadata write then
// fails the object is deleted again, best effort.
func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	accountID := c.MustGet("accountID").(string)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	code, f, contentType, err := validators.FileValidator(fh, a.DB, userID)
	if err != nil {
		if code == http.StatusInternalServerError {
			zap.L().Error("Failed to validate file", zap.Error(err), zap.String("requestID", requestID))
			err = validators.ErrNoFile // generic message, details stay in the log
		}

		c.AbortWithStatusJSON(code, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}
	defer f.Close()

	bucketFileID, err := gonanoid.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate bucket file ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	ctx := c.Request.Context()

	err = a.Store.Put(ctx, bucketFileID, f, fh.Size, contentType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to upload file to storage", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	fileType, extension := util.FileType(fh.Filename)

	fileID, err := gonanoid.New()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate file ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	file := model.File{
		ID:           fileID,
		Name:         fh.Filename,
		Type:         fileType,
		OwnerID:      userID,
		AccountID:    accountID,
		Extension:    extension,
		URL:          util.ConstructFileURL(bucketFileID),
		Size:         fh.Size,
		Users:        model.StringSlice{},
		BucketFileID: bucketFileID,
	}

	if err := a.DB.Create(&file).Error; err != nil {
		// Don't leave the object orphaned behind a failed metadata
		// write. The request context may already be gone here
		if delErr := a.Store.Delete(context.Background(), bucketFileID); delErr != nil {
			zap.L().Error("Failed to clean up after failed upload",
				zap.Error(delErr), zap.String("bucketFileId", bucketFileID))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save file record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	a.Cache.Invalidate(userID)

	c.JSON(http.StatusCreated, file)
}
