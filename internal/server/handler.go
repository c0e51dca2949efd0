package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// CorrelationIDKey is the gin context key holding the correlation id of
// the current request.
const CorrelationIDKey = "correlation-id"

// CorrelationIDHeader is the wire header carrying the correlation id.
const CorrelationIDHeader = "X-Correlation-Id"

// NotFoundHandler is a helper function that calls server.Abort.
func NotFoundHandler(c *gin.Context) {
	Abort(c, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// LoggerHandler returns a gin.HandlerFunc (middleware) that logs requests
// using logrus.
//
// Requests with errors are logged using logrus.Error().
// Requests without errors are logged using logrus.Info().
func LoggerHandler(logger logrus.FieldLogger, timeFormat string, utc bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		// some evil middlewares modify this values
		path := c.Request.URL.Path
		c.Next()

		end := time.Now()
		latency := end.Sub(start)
		if utc {
			end = end.UTC()
		}

		entry := logger.WithFields(logrus.Fields{
			"status":         c.Writer.Status(),
			"method":         c.Request.Method,
			"uri":            c.Request.RequestURI,
			"path":           path,
			"content_type":   c.ContentType(),
			"remote-addr":    c.ClientIP(),
			"user-agent":     c.Request.UserAgent(),
			"correlation-id": c.GetString(CorrelationIDKey),
			"latency":        latency,
			"time":           end.Format(timeFormat),
		})

		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
		} else {
			entry.Info()
		}
	}
}

// CORSHandler returns a gin.HandlerFunc (middleware) to enable CORS
// support to all origins.
func CORSHandler() gin.HandlerFunc {
	config := cors.DefaultConfig()
	allowHeaders := []string{
		"Accept",
		"Authorization",
		"Content-Type",
		"Keep-Alive",
		"Origin",
		"User-Agent",
		"X-Requested-With",
		CorrelationIDHeader,
	}
	config.AllowHeaders = append(config.AllowHeaders, allowHeaders...)
	config.AllowAllOrigins = true
	return cors.New(config)
}

// CorrelationIDHandler assigns every request a correlation id, taking the
// caller's X-Correlation-Id header when present and generating a fresh one
// otherwise. The id threads one business operation across the commands and
// events it produces, and is echoed in the response headers.
func CorrelationIDHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.NewV4().String()
		}

		c.Set(CorrelationIDKey, correlationID)
		c.Writer.Header().Set(CorrelationIDHeader, correlationID)
		c.Next()
	}
}
