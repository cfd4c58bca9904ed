package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CheckoutMetrics struct {
	Attempts *prometheus.CounterVec
	Amount   prometheus.Histogram
	Latency  prometheus.Histogram
}

func NewCheckoutMetrics(reg prometheus.Registerer) (*CheckoutMetrics, error) {
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "attempts_total",
		Help:      "Total number of checkout attempts by result.",
	}, []string{"result"})
	amount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "checkout",
		Name:      "amount",
		Help:      "Charged amount of successful checkouts.",
		Buckets:   []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "checkout",
		Name:      "duration_ms",
		Help:      "Checkout latency in milliseconds, lock wait included.",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 1000},
	})

	for _, c := range []prometheus.Collector{attempts, amount, latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &CheckoutMetrics{Attempts: attempts, Amount: amount, Latency: latency}, nil
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
