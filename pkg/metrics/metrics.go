package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SimplifyRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simplifier", Name: "requests_total", Help: "Number of /simplify requests by outcome (ok, invalid, error)."},
		[]string{"outcome"},
	)
	InferenceDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "simplifier", Name: "inference_duration_seconds", Help: "Model generation latency by compute device.", Buckets: prometheus.ExponentialBuckets(0.05, 2, 10)},
		[]string{"device"},
	)
	PersistenceWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simplifier", Name: "persistence_writes_total", Help: "Best-effort record writes by sink (mongo, minio) and result (stored, failed, skipped)."},
		[]string{"sink", "result"},
	)
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "simplifier", Name: "cache_lookups_total", Help: "Simplification cache lookups by result (hit, miss, error)."},
		[]string{"result"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(SimplifyRequests)
	reg.MustRegister(InferenceDuration)
	reg.MustRegister(PersistenceWrites)
	reg.MustRegister(CacheLookups)
}
