// Package middleware contains any custom middleware used in the app
package middleware

import (
	"storeit/storage-api/util"

	"github.com/gin-gonic/gin"
)

// NewRequestIDMiddleware tags every request with a short random ID,
// exposed as requestID on the context. Error bodies and log lines carry
// it so a user report can be matched to the server side.
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requestID", util.RandStr(10))
		c.Next()
	}
}
