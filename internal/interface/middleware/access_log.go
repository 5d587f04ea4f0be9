package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AccessLog logs one line per request. 5xx answers log at error level and
// 4xx at warn.
func AccessLog(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		ip := c.GetString("real_ip")
		if ip == "" {
			ip = c.ClientIP()
		}
		entry := logger.WithFields(logrus.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"ip":         ip,
			"user_agent": c.Request.UserAgent(),
			"latency":    time.Since(start).String(),
			"request_id": c.GetString("request_id"),
		})
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			entry = entry.WithField("error", errs.String())
		}

		switch {
		case status >= 500:
			entry.Error("request handled")
		case status >= 400:
			entry.Warn("request handled")
		default:
			entry.Info("request handled")
		}
	}
}
