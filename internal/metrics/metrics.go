package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hospital_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hospital_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	ClockEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hospital_clock_events_total",
		Help: "Clock-in and clock-out attempts by outcome.",
	}, []string{"event", "outcome"})

	PaymentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hospital_payment_status_changes_total",
		Help: "Payment request status changes by target status and outcome.",
	}, []string{"status", "outcome"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hospital_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
)

// GinMiddleware records request counts and latency keyed by the matched route template.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
