package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	CheckoutOrdersTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_total",
		Help: "Total payment orders created at the gateway",
	})
	CheckoutFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Total checkout requests that failed at the gateway",
	})
	CustomerUpsertFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_customer_upsert_failures_total",
		Help: "Total best-effort customer upserts that failed",
	})
	ImageStoreMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_store_misses_total",
		Help: "Total image lookups for keys that were never stored",
	})
)

func init() {
	prometheus.MustRegister(
		CheckoutOrdersTotal,
		CheckoutFailuresTotal,
		CustomerUpsertFailuresTotal,
		ImageStoreMissesTotal,
	)
}
