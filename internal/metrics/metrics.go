package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gretutor",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	completionReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gretutor",
			Name:      "completion_requests_total",
			Help:      "Total completion API requests by provider, model and result",
		},
		[]string{"provider", "model", "result"},
	)

	completionLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gretutor",
			Name:      "completion_request_duration_seconds",
			Help:      "Duration of completion API requests by provider and model",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)

	cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gretutor",
			Name:      "response_cache_lookups_total",
			Help:      "Response cache lookups by outcome (hit, miss)",
		},
		[]string{"outcome"},
	)

	ocrLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gretutor",
			Name:      "ocr_duration_seconds",
			Help:      "Duration of Tesseract runs by result",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	feedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gretutor",
			Name:      "feedback_total",
			Help:      "User feedback on tutor responses",
		},
		[]string{"helpful"},
	)

	registerOnce sync.Once
)

// Init registers collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, completionReqs, completionLatency, cacheLookups, ocrLatency, feedbackTotal)
	})
}

// Handler returns the http.Handler for /metrics
func Handler() http.Handler { return promhttp.Handler() }

func ObserveHTTP(method, route string, status int) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func ObserveCompletion(provider, model, result string, dur time.Duration) {
	completionReqs.WithLabelValues(provider, model, result).Inc()
	completionLatency.WithLabelValues(provider, model).Observe(dur.Seconds())
}

func ObserveOCR(result string, dur time.Duration) {
	ocrLatency.WithLabelValues(result).Observe(dur.Seconds())
}

func CacheHit() { cacheLookups.WithLabelValues("hit").Inc() }
func CacheMiss() { cacheLookups.WithLabelValues("miss").Inc() }

func IncFeedback(helpful bool) { feedbackTotal.WithLabelValues(strconv.FormatBool(helpful)).Inc() }
