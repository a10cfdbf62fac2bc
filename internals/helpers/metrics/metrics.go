package helper

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	ShortlinkRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shortlink_redirects_total",
		Help: "Short-link redirects by outcome (hit, missing, expired).",
	}, []string{"outcome"})

	DonationsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "donations_submitted_total",
		Help: "Donations submitted through the public form.",
	})

	DonationStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "donation_status_changes_total",
		Help: "Donation status transitions by target status.",
	}, []string{"status"})

	StatsRecomputes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stats_recompute_total",
		Help: "Yearly stats recomputations by trigger and result.",
	}, []string{"trigger", "result"})
)

// Handler exposes the default registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// Middleware records request latency labelled with the matched route pattern.
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
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path
		}
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
