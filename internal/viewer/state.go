// Package viewer owns the viewer state and applies user events to it.
package viewer

import (
	"paperview/internal/dataset"
	"paperview/internal/facet"
	"paperview/internal/filter"
	"paperview/internal/render"
)

// State is the single owned copy of everything the viewer shows. Dataset
// and Facets never change after construction; Criteria and View change
// on every filter event.
type State struct {
	Dataset  *dataset.Dataset
	Facets   *facet.Index
	Criteria filter.Criteria
	View     []dataset.Record
}

// NewState indexes ds for filters and starts with the unfiltered view.
func NewState(ds *dataset.Dataset, filters []facet.Filter) *State {
	if ds == nil {
		ds = dataset.Empty()
	}
	s := &State{
		Dataset: ds,
		Facets:  facet.Build(ds, filters),
	}
	s.View = filter.Apply(ds, s.Criteria)
	return s
}

// Total returns the dataset size.
func (s *State) Total() int {
	return s.Dataset.Len()
}

// Table renders the current view.
func (s *State) Table(opts render.Options) render.Table {
	return render.Build(s.View, s.Total(), opts)
}

// Controls renders the filter panel for the current criteria.
func (s *State) Controls() render.Controls {
	return render.BuildControls(s.Facets, s.Criteria)
}
