package server

import (
	"sync"

	"github.com/matst80/slask-property/pkg/selection"
	"github.com/matst80/slask-property/pkg/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	noFilters = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskproperty_filters_total",
		Help: "The total number of filter changes",
	})
	noSelections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskproperty_selections_total",
		Help: "The total number of selected properties",
	}, []string{"source"})
	noEmptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskproperty_no_results_total",
		Help: "The total number of filters that matched no property",
	})
	totalProperties = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskproperty_properties_total",
		Help: "The number of loaded properties",
	})
)

// PropertyCounter keeps the properties gauge in line with loaded listings.
type PropertyCounter struct{}

func (PropertyCounter) HandleProperties(properties []types.Property) error {
	totalProperties.Set(float64(len(properties)))
	return nil
}

type noResultsListener struct {
	mu   sync.Mutex
	last bool
}

// Render counts each time a session goes from showing results to showing the
// no results warning.
func (l *noResultsListener) Render(view selection.View) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if view.ShowNoResults && !l.last {
		noEmptyResults.Inc()
	}
	l.last = view.ShowNoResults
}

func NoResultsListener(id string) selection.Listener {
	return &noResultsListener{}
}
