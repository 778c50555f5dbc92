package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	returnDayCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "return_day_cache_total",
			Help: "Supplier-return-day cache lookups by outcome.",
		},
		[]string{"outcome"}, // hit / miss
	)
	upstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_upstream_calls_total",
			Help: "Calls issued to the platform panels.",
		},
		[]string{"panel", "kind"}, // kind: ok / error
	)
	stockScanPages = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stock_scan_pages",
			Help:    "Pages fetched per slow-path catalog scan.",
			Buckets: []float64{1, 2, 3, 5, 10},
		},
	)
)

func init() {
	prometheus.MustRegister(returnDayCacheTotal)
	prometheus.MustRegister(upstreamCallsTotal)
	prometheus.MustRegister(stockScanPages)
}

func RecordCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	returnDayCacheTotal.WithLabelValues(outcome).Inc()
}

func RecordUpstreamCall(panel string, err error) {
	kind := "ok"
	if err != nil {
		kind = "error"
	}
	upstreamCallsTotal.WithLabelValues(panel, kind).Inc()
}

func RecordScanPages(pages int) {
	stockScanPages.Observe(float64(pages))
}
