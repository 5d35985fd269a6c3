// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DatasetReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redline_dataset_reloads_total",
			Help: "Count of dataset load attempts",
		},
		[]string{"status"},
	)

	LabelAssignmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redline_label_assignments_total",
			Help: "Count of label assignments and clears",
		},
		[]string{"action"},
	)

	SavesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redline_saves_total",
			Help: "Count of save attempts against the label store",
		},
		[]string{"store", "status"},
	)

	SavedRowsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "redline_saved_rows_total",
			Help: "Number of labeled rows written by successful saves",
		},
	)

	PersistedLabels = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "redline_persisted_labels",
			Help: "Rows in the persisted labeled dataset after the last save",
		},
	)
)

func Init() {
	prometheus.MustRegister(DatasetReloadsTotal)
	prometheus.MustRegister(LabelAssignmentsTotal)
	prometheus.MustRegister(SavesTotal)
	prometheus.MustRegister(SavedRowsTotal)
	prometheus.MustRegister(PersistedLabels)
}
