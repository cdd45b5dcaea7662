// Package metrics exposes the server's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "photoclub", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "path", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "photoclub", Name: "http_request_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
	otpIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "photoclub", Name: "otp_issued_total", Help: "Registration OTP codes issued",
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, otpIssued)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler { return promhttp.Handler() }

// ObserveOTPIssued counts one issued registration code.
func ObserveOTPIssued() { otpIssued.Inc() }

// Middleware records a counter and latency sample per request, labeled by
// route template (not the raw URL, to keep cardinality bounded).
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
