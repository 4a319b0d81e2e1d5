package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillcoach/backend/internal/logger"
)

const requestIDHeader = "X-Request-ID"

type RequestIDMiddleware struct {
	log *logger.Logger
}

func NewRequestIDMiddleware(log *logger.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{log: log.With("middleware", "RequestIDMiddleware")}
}

// Attach tags every request with an id, echoing an inbound X-Request-ID
// when the caller supplied one.
func (m *RequestIDMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		m.log.Debug("Request received", "request_id", requestID, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	}
}
