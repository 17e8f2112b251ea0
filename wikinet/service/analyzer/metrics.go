package analyzer

import "github.com/prometheus/client_golang/prometheus"

var (
	datasetsProcessedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wikinet",
		Subsystem: "analyzer",
		Name:      "datasets_processed_total",
		Help:      "Number of dataset passes, partitioned by dataset and outcome.",
	}, []string{"dataset", "status"})

	analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wikinet",
		Subsystem: "analyzer",
		Name:      "analysis_duration_seconds",
		Help:      "Wall-clock time spent building and analyzing one dataset.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"dataset"})

	graphNodes = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "wikinet",
		Subsystem: "analyzer",
		Name:      "graph_nodes",
		Help:      "Node count of the most recently built graph per dataset.",
	}, []string{"dataset"})

	graphEdges = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "wikinet",
		Subsystem: "analyzer",
		Name:      "graph_edges",
		Help:      "Edge count of the most recently built graph per dataset.",
	}, []string{"dataset"})
)

func init() {
	prometheus.MustRegister(datasetsProcessedTotal, analysisDuration, graphNodes, graphEdges)
}
