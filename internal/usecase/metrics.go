package usecase

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the session counters. A nil *Metrics records nothing.
type Metrics struct {
	autosaveWrites  *prometheus.CounterVec
	keywordAnalyses prometheus.Counter
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		autosaveWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resume_autosave_writes_total",
				Help: "Autosave writes by result.",
			},
			[]string{"result"},
		),
		keywordAnalyses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resume_keyword_analyses_total",
			Help: "Job description keyword analyses performed.",
		}),
	}
	for _, c := range []prometheus.Collector{m.autosaveWrites, m.keywordAnalyses} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) autosaveResult(result string) {
	if m == nil {
		return
	}
	m.autosaveWrites.WithLabelValues(result).Inc()
}

func (m *Metrics) keywordAnalysis() {
	if m == nil {
		return
	}
	m.keywordAnalyses.Inc()
}
