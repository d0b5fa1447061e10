package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// Metrics 记录HTTP请求数、耗时和处理中的请求数
// path使用路由模板(/books/:id),避免高基数
func Metrics() gin.HandlerFunc {
	metrics.InitMetrics()
	return func(c *gin.Context) {
		start := time.Now()
		metrics.HTTPRequestsInProgress.Inc()
		defer metrics.HTTPRequestsInProgress.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
