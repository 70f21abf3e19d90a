package middleware

import (
	"fmt"
	"net/http"

	"entity-tracker-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic in a handler into a logged 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.WithContext(c.Request.Context()).
			WithField("panic", fmt.Sprint(recovered)).
			Error("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}
