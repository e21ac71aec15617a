package audit

import "github.com/prometheus/client_golang/prometheus"

var (
	writesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "audit",
		Name:      "writes_total",
		Help:      "Audit records successfully written to the object store",
	})

	failuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "audit",
		Name:      "failures_total",
		Help:      "Audit writes that failed (logged and discarded)",
	})

	dropsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Subsystem: "audit",
		Name:      "drops_total",
		Help:      "Audit records dropped because the queue was full",
	})
)

func init() {
	prometheus.MustRegister(writesTotal, failuresTotal, dropsTotal)
}
