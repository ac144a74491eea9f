package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	orderFormRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sales_pulse",
		Subsystem: "order_form",
		Name:      "renders_total",
		Help:      "Total number of order form renders broken down by format and result.",
	}, []string{"format", "result"})

	orderFormRenderLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sales_pulse",
		Subsystem: "order_form",
		Name:      "render_seconds",
		Help:      "Latency distribution for order form renders.",
		Buckets: []float64{
			0.005, 0.01, 0.05,
			0.1, 0.25, 0.5,
			1, 2.5, 5, 10, 30,
		},
	}, []string{"format"})

	orderFormPages = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sales_pulse",
		Subsystem: "order_form",
		Name:      "pages",
		Help:      "Number of printed pages per order form.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
