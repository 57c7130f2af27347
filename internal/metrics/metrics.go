// Package metrics содержит метрики Prometheus сервиса и HTTP middleware для их сбора.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы обработки лида.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

var (
	// ReviewsCreated число сохранённых отзывов.
	ReviewsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "institute",
		Name:      "reviews_created_total",
		Help:      "Number of reviews stored.",
	})

	// LeadsSubmitted число лидов по виду (contact, brochure) и исходу записи в таблицу.
	LeadsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "institute",
		Name:      "leads_submitted_total",
		Help:      "Number of leads forwarded to the spreadsheet, by kind and outcome.",
	}, []string{"kind", "outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "institute",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by route pattern, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "institute",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// Middleware считает запросы и их длительность по шаблону маршрута chi.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
