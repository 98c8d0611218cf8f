package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Chat events processed, by kind
	eventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnwords_events_total",
			Help: "Total number of chat events processed",
		},
		[]string{"kind"},
	)

	// Chat events that failed
	eventErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnwords_event_errors_total",
			Help: "Total number of chat events that failed",
		},
		[]string{"kind"},
	)

	questionsIssuedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "learnwords_questions_issued_total",
			Help: "Total number of questions sent to users",
		},
	)

	// Graded answers, by result
	answersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learnwords_answers_total",
			Help: "Total number of graded answers",
		},
		[]string{"result"},
	)

	sessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "learnwords_sessions_active",
			Help: "Number of live training sessions",
		},
	)
)

// RecordEvent counts a processed chat event
func RecordEvent(kind string, failed bool) {
	eventsTotal.WithLabelValues(kind).Inc()
	if failed {
		eventErrorsTotal.WithLabelValues(kind).Inc()
	}
}

// RecordQuestion counts an issued question
func RecordQuestion() {
	questionsIssuedTotal.Inc()
}

// RecordAnswer counts a graded answer
func RecordAnswer(correct bool) {
	result := "wrong"
	if correct {
		result = "correct"
	}
	answersTotal.WithLabelValues(result).Inc()
}

// SetActiveSessions reports the number of live sessions
func SetActiveSessions(n int) {
	sessionsActive.Set(float64(n))
}
