package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	DroppedRecordsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "board_normalization_dropped_total",
			Help: "Total number of upstream records dropped during normalization.",
		},
	)
	FetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "board_fetch_duration_seconds",
			Help:    "Duration of each upstream listings fetch in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10},
		},
	)
	StoreMutationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_store_mutations_total",
			Help: "Total number of store mutations by operation.",
		},
		[]string{"operation"},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(DroppedRecordsCounter)
	prometheus.MustRegister(FetchDuration)
	prometheus.MustRegister(StoreMutationsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
