package calendar

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "habitcal_leave_requests",
			Help: "Number of leave requests currently on the calendar",
		},
	)

	opsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habitcal_leave_operations_total",
			Help: "Leave mutations by operation and result",
		},
		[]string{"op", "result"},
	)
)
