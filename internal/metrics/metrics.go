package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts tournament activity
type Recorder interface {
	TournamentCreated()
	TournamentFinished()
	ScoreSubmitted()
	// RoundAdvanced records a completed round and how many players sit out the next one
	RoundAdvanced(sitovers int)
	PrematureAdvance()
}

// Config holds configuration for the Prometheus recorder
type Config struct {
	// Registry the collectors are registered with
	Registry prometheus.Registerer

	// Namespace prefixes every metric name, "mexicano" when empty
	Namespace string
}

type prometheusRecorder struct {
	tournamentsCreated  prometheus.Counter
	tournamentsFinished prometheus.Counter
	scoresSubmitted     prometheus.Counter
	roundsAdvanced      prometheus.Counter
	prematureAdvances   prometheus.Counter
	sitovers            prometheus.Histogram
}

// NewPrometheus creates a recorder and registers its collectors
func NewPrometheus(cfg *Config) (*prometheusRecorder, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Registry == nil {
		return nil, errors.New("registry cannot be nil")
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "mexicano"
	}

	r := &prometheusRecorder{
		tournamentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_created_total",
			Help:      "Tournaments started.",
		}),
		tournamentsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tournaments_finished_total",
			Help:      "Tournaments closed.",
		}),
		scoresSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_submitted_total",
			Help:      "Match scores entered, including corrections.",
		}),
		roundsAdvanced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_advanced_total",
			Help:      "Rounds finalized.",
		}),
		prematureAdvances: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "premature_advances_total",
			Help:      "Advance requests refused because a match had no score.",
		}),
		sitovers: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_sitovers",
			Help:      "Players sitting out each new round.",
			Buckets:   []float64{0, 1, 2, 3},
		}),
	}

	for _, c := range []prometheus.Collector{
		r.tournamentsCreated,
		r.tournamentsFinished,
		r.scoresSubmitted,
		r.roundsAdvanced,
		r.prematureAdvances,
		r.sitovers,
	} {
		if err := cfg.Registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return r, nil
}

func (r *prometheusRecorder) TournamentCreated()  { r.tournamentsCreated.Inc() }
func (r *prometheusRecorder) TournamentFinished() { r.tournamentsFinished.Inc() }
func (r *prometheusRecorder) ScoreSubmitted()     { r.scoresSubmitted.Inc() }
func (r *prometheusRecorder) PrematureAdvance()   { r.prematureAdvances.Inc() }

func (r *prometheusRecorder) RoundAdvanced(sitovers int) {
	r.roundsAdvanced.Inc()
	r.sitovers.Observe(float64(sitovers))
}

type noopRecorder struct{}

// NewNoop returns a recorder that discards everything
func NewNoop() Recorder {
	return noopRecorder{}
}

func (noopRecorder) TournamentCreated()  {}
func (noopRecorder) TournamentFinished() {}
func (noopRecorder) ScoreSubmitted()     {}
func (noopRecorder) RoundAdvanced(int)   {}
func (noopRecorder) PrematureAdvance()   {}
