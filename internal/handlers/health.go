package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wellcoach/patterns-api/internal/apierror"
)

// Health reports liveness and the configured environment and insight source
// GET /health
func Health(env, source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    env,
			"source": source,
		})
	}
}

// NotFound renders unknown routes as problem details
func NotFound(c *gin.Context) {
	apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "route", c.Request.URL.Path))
}
