package habits

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	activeHabits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habitcal_active_habits_total",
			Help: "Number of habits currently tracked",
		},
	)

	toggleTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitcal_habit_toggles_total",
			Help: "Habit completion toggles by direction",
		},
		[]string{"action"},
	)

	storageErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitcal_storage_errors_total",
			Help: "Swallowed habit snapshot storage failures by operation",
		},
		[]string{"op"},
	)
)
