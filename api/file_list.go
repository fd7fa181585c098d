package api

import (
	"errors"
	"net/http"
	"strconv"

	"storeit/storage-api/model"
	"storeit/storage-api/query"
	"storeit/storage-api/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileList returns the files the user owns or has shared with them,
// filtered by category, search substring and sort token.
func (a *API) FileList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	email := c.MustGet("userEmail").(string)

	var types []string
	if category := c.Query("category"); category != "" {
		types = util.CategoryTypes(category)
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		var err error

		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     "Invalid limit provided",
				"requestID": requestID,
			})
			return
		}
	}

	tx, err := query.List(a.DB.Model(model.File{}), userID, email, query.ListParams{
		Types:  types,
		Search: c.Query("query"),
		Sort:   c.DefaultQuery("sort", query.DefaultSort),
		Limit:  limit,
	})
	if err != nil {
		if errors.Is(err, query.ErrBadSortField) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to build file query", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var files []model.File

	if err := tx.Find(&files).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     len(files),
		"documents": files,
	})
}
