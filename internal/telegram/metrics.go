package telegram

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	updatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "histobot",
		Name:      "updates_total",
		Help:      "Telegram updates handled, by kind.",
	}, []string{"kind"})

	updateErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "histobot",
		Name:      "update_errors_total",
		Help:      "Telegram updates whose handling returned an error, by kind.",
	}, []string{"kind"})

	accessDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "histobot",
		Name:      "access_decisions_total",
		Help:      "Access checks for gated screens, by tier and reason.",
	}, []string{"tier", "reason"})

	trialActivationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "histobot",
		Name:      "trial_activations_total",
		Help:      "Trial activation attempts, by result.",
	}, []string{"result"})
)
