package response

import (
	"log/slog"

	"campus/internal/shared/apierr"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, SuccessBody{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// List is Success with an explicit element count, used by listing endpoints.
func List(c *gin.Context, code int, count int, data interface{}) {
	c.JSON(code, SuccessBody{
		Success: true,
		Count:   &count,
		Data:    data,
	})
}

// Error classifies err and writes the uniform error body. Internal detail
// is logged here and never included in the response.
func Error(c *gin.Context, err error) {
	status, message := apierr.Classify(err)
	if status >= 500 {
		slog.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}
	c.JSON(status, ErrorBody{
		Success:    false,
		Error:      message,
		StatusCode: status,
	})
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
