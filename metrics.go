package pokerentry

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricNamespace = "pokerentry"

type Metrics struct {
	enrollments     *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	openedForPublic *prometheus.CounterVec
}

// NewMetrics creates the registry collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		enrollments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "enrollments_total",
				Help:      "Successful enrollments",
			},
			[]string{"tournament_id"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "rejections_total",
				Help:      "Rejected operations by failure reason",
			},
			[]string{"tournament_id", "operation", "reason"},
		),
		openedForPublic: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      "opened_for_public_total",
				Help:      "Whitelist to public transitions",
			},
			[]string{"tournament_id"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.enrollments, m.rejections, m.openedForPublic)
	}

	return m
}

func (m *Metrics) observeEnrollment(tournamentID string) {
	if m == nil {
		return
	}
	m.enrollments.WithLabelValues(tournamentID).Inc()
}

func (m *Metrics) observeRejection(tournamentID, operation string, err error) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(tournamentID, operation, Reason(err)).Inc()
}

func (m *Metrics) observeOpenedForPublic(tournamentID string) {
	if m == nil {
		return
	}
	m.openedForPublic.WithLabelValues(tournamentID).Inc()
}
