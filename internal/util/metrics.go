package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_fetched_total",
		Help: "Total number of order detail fetches",
	})

	OrderItemsUpdatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "order_items_updated_total",
		Help: "Total number of order item save operations",
	})

	OrderStatusChangesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Total number of order status changes",
	}, []string{"status"})

	OrdersCombinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_combined_total",
		Help: "Total number of order combine operations",
	})

	OrderSaveFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "order_save_failed_total",
		Help: "Total number of failed order save operations",
	}, []string{"reason"})

	IntegrityIssuesFound = promauto.NewCounter(prometheus.CounterOpts{
		Name: "integrity_issues_found_total",
		Help: "Total number of dangling product references surfaced",
	})

	OrphansRelinkedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orphans_relinked_total",
		Help: "Total number of order items relinked by the diagnostics fix",
	})

	CatalogCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total number of catalog reads served from Redis",
	})

	CatalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total number of catalog reads served from Postgres",
	})

	DocumentsRenderedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "documents_rendered_total",
		Help: "Total number of print documents rendered",
	}, []string{"layout"})

	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Total number of login attempts",
	}, []string{"result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
