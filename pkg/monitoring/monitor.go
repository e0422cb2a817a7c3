package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizAttemptsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "football_iq_attempts_completed_total",
			Help: "Completed Football IQ quiz attempts",
		},
		[]string{"position", "passed"},
	)

	QuizAttemptsAbandoned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "football_iq_attempts_abandoned_total",
			Help: "Quiz attempts marked abandoned by the sweeper",
		},
	)

	AttemptScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "football_iq_attempt_score",
			Help:    "Distribution of completed attempt scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			QuizAttemptsCompleted,
			QuizAttemptsAbandoned,
			AttemptScore,
		)
	})
}

// RecordAttempt 完成一次测验后调用；position 为空表示测验已不存在
func RecordAttempt(position string, passed bool, score int) {
	if position == "" {
		position = "unknown"
	}
	QuizAttemptsCompleted.WithLabelValues(position, strconv.FormatBool(passed)).Inc()
	AttemptScore.Observe(float64(score))
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
