package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	predictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "predictions_total",
		Help:      "Total number of predictions made",
	})

	lastFailureRisk = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sentinel",
		Name:      "last_failure_risk",
		Help:      "The last predicted failure risk score",
	})

	healthChecksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "health_checks_total",
		Help:      "Total number of health checks performed",
	})

	modelUpdatesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentinel",
		Name:      "model_updates_total",
		Help:      "Total number of times the model was updated",
	})
)

func init() {
	prometheus.MustRegister(predictionsTotal, lastFailureRisk, healthChecksTotal, modelUpdatesTotal)
}
