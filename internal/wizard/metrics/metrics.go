package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SessionsStarted      *prometheus.CounterVec
	Submissions          *prometheus.CounterVec
	IneligibleSelections prometheus.Counter
	StepTransitions      *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		SessionsStarted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lingo_wizard_sessions_started_total",
			Help: "Wizard sessions started, by mode",
		}, []string{"mode"}),
		Submissions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lingo_wizard_submissions_total",
			Help: "Profile submissions, by outcome",
		}, []string{"outcome"}),
		IneligibleSelections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lingo_wizard_ineligible_selections_total",
			Help: "Gated service selections rejected for missing certification",
		}),
		StepTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lingo_wizard_step_transitions_total",
			Help: "Sequencer transitions, by event",
		}, []string{"event"}),
	}
}

func (m *Metrics) IncSessionStarted(mode string) {
	m.SessionsStarted.WithLabelValues(mode).Inc()
}

func (m *Metrics) IncSubmission(outcome string) {
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncIneligibleSelection() {
	m.IneligibleSelections.Inc()
}

func (m *Metrics) IncStepTransition(event string) {
	m.StepTransitions.WithLabelValues(event).Inc()
}
