// Package metrics holds the prometheus collectors of the carousel service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Advances = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carousel_advances_total", Help: "Slide changes by deck and cause"},
		[]string{"deck", "cause"},
	)
	Mounts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carousel_mounts_total", Help: "Carousels mounted"},
		[]string{"deck"},
	)
	Unmounts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "carousel_unmounts_total", Help: "Carousels unmounted by reason"},
		[]string{"reason"},
	)
	LiveMounts = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "carousel_live_mounts", Help: "Carousels currently mounted"},
	)
)

func Register() {
	prometheus.MustRegister(Advances, Mounts, Unmounts, LiveMounts)
}
