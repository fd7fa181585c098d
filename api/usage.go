package api

import (
	"net/http"

	"storeit/storage-api/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Usage returns the per-category storage breakdown for the current
// user against the fixed quota.
func (a *API) Usage(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	summary, err := service.TotalSpaceUsed(a.DB, userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to calculate space usage", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}
