package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the game-facing prometheus collectors.
type Metrics struct {
	Answers       *prometheus.CounterVec
	OnlinePlayers prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "thinkfast_answers_total",
			Help: "Answer submissions handled, partitioned by outcome.",
		}, []string{"outcome"}),

		OnlinePlayers: f.NewGauge(prometheus.GaugeOpts{
			Name: "thinkfast_online_players",
			Help: "Number of currently registered player connections.",
		}),
	}
}
