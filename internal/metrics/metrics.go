package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listd_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listd_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ListingSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listd_listing_searches_total",
			Help: "Total number of listing searches by ordering mode",
		},
		[]string{"mode"},
	)

	Valuations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listd_valuations_total",
			Help: "Total number of valuations by outcome",
		},
		[]string{"outcome"},
	)

	ReferenceCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listd_reference_cache_lookups_total",
			Help: "Reference list cache lookups by list and result",
		},
		[]string{"list", "result"},
	)
)

// Valuation outcomes.
const (
	OutcomeEstimated     = "estimated"
	OutcomeRecorded      = "recorded"
	OutcomeRecordFailed  = "record_failed"
	OutcomeEstimateError = "error"
)

func ObserveSearch(searching bool) {
	mode := "recent"
	if searching {
		mode = "relevance"
	}
	ListingSearches.WithLabelValues(mode).Inc()
}

func ObserveValuation(outcome string) {
	Valuations.WithLabelValues(outcome).Inc()
}

func ObserveCache(list string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	ReferenceCache.WithLabelValues(list, result).Inc()
}

// Middleware records request count and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
