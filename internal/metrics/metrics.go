package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	StudentsRegistered  prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
	Exports             *prometheus.CounterVec
	Logins              *prometheus.CounterVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StudentsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "uepex_students_registered_total",
			Help: "Total number of student records persisted",
		}),
		SubmissionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uepex_submissions_rejected_total",
			Help: "Student submissions rejected, by response code",
		}, []string{"code"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uepex_exports_total",
			Help: "Exports generated, by format and source",
		}, []string{"format", "source"}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "uepex_logins_total",
			Help: "Login attempts, by result",
		}, []string{"result"}),
	}
}

// RecordRegistered increments the registered counter by 1.
func (m *Metrics) RecordRegistered() {
	if m == nil {
		return
	}
	m.StudentsRegistered.Inc()
}

// RecordRejected counts a rejected submission.
func (m *Metrics) RecordRejected(code string) {
	if m == nil {
		return
	}
	m.SubmissionsRejected.WithLabelValues(code).Inc()
}

// RecordExport counts an export; source is "render" or "snapshot".
func (m *Metrics) RecordExport(format, source string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format, source).Inc()
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(result string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(result).Inc()
}
