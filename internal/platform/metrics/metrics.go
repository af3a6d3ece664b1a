package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the portal core.
type Metrics struct {
	Logins            *prometheus.CounterVec
	AdmissionDenials  *prometheus.CounterVec
	Registrations     prometheus.Counter
	RouteRedirects    prometheus.Counter
	SectionDenials    prometheus.Counter
	AccountLockouts   prometheus.Counter
	RehydrateFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sirpo_logins_total",
			Help: "Successful logins by session kind",
		}, []string{"kind"}),
		AdmissionDenials: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sirpo_admission_denials_total",
			Help: "Registration attempts denied by admission control, by reason",
		}, []string{"reason"}),
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sirpo_registrations_total",
			Help: "Registrations successfully submitted",
		}),
		RouteRedirects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sirpo_route_redirects_total",
			Help: "Navigation requests rewritten by the route reconciler",
		}),
		SectionDenials: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sirpo_admin_section_denials_total",
			Help: "Admin section requests denied by the role gate",
		}),
		AccountLockouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sirpo_account_lockouts_total",
			Help: "Accounts locked after repeated login failures",
		}),
		RehydrateFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sirpo_rehydrate_failures_total",
			Help: "Persisted sessions discarded because the stored record was malformed",
		}),
	}
}
