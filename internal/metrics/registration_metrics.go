package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RegistrationsCreated is a Prometheus counter for tracking the total number of completed registrations.
	RegistrationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrations_created_total",
		Help: "The total number of completed registrations",
	})

	// RegistrationsFailed is a Prometheus counter for tracking registrations that failed before commit.
	RegistrationsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "registrations_failed_total",
		Help: "The total number of registrations that failed",
	})

	// DuplicateRegistrations is a Prometheus counter for tracking submissions rejected as duplicates.
	DuplicateRegistrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "duplicate_registrations_total",
		Help: "The total number of registrations rejected because the email or document number already exists",
	})
)
