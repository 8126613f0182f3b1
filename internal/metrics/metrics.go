// Package metrics exports search activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/roach88/ntm/internal/search"
)

// Collector counts search events. It implements search.Observer.
type Collector struct {
	expanded *prometheus.CounterVec
	depth    *prometheus.GaugeVec
	frontier *prometheus.GaugeVec
	verdicts *prometheus.CounterVec

	machine string
}

// New creates a Collector and registers its metrics with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		expanded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ntm_configurations_expanded_total",
			Help: "Configurations handed to the transition engine.",
		}, []string{"machine"}),
		depth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ntm_search_depth",
			Help: "Depth of the most recently expanded configuration.",
		}, []string{"machine"}),
		frontier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ntm_frontier_size",
			Help: "Configurations waiting in the frontier.",
		}, []string{"machine"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ntm_runs_total",
			Help: "Finished searches by verdict.",
		}, []string{"machine", "verdict"}),
	}

	for _, col := range []prometheus.Collector{c.expanded, c.depth, c.frontier, c.verdicts} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
	}
	return c, nil
}

// ForMachine returns an observer that labels events with name.
func (c *Collector) ForMachine(name string) search.Observer {
	return &Collector{
		expanded: c.expanded,
		depth:    c.depth,
		frontier: c.frontier,
		verdicts: c.verdicts,
		machine:  name,
	}
}

func (c *Collector) OnEvent(e search.Event) {
	switch e.Kind {
	case search.EventExpand:
		c.expanded.WithLabelValues(c.machine).Inc()
		c.depth.WithLabelValues(c.machine).Set(float64(e.Depth))
		c.frontier.WithLabelValues(c.machine).Set(float64(e.Frontier))
	case search.EventAccept:
		c.verdicts.WithLabelValues(c.machine, "accepted").Inc()
	case search.EventReject:
		c.verdicts.WithLabelValues(c.machine, "rejected").Inc()
	}
}

// WriteText writes every metric family from g in the text exposition
// format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
