package viewer

import (
	"time"

	"paperview/internal/config"
	"paperview/internal/dataset"
	"paperview/internal/facet"
	"paperview/internal/filter"
	"paperview/internal/logging"
	"paperview/internal/render"
)

// Update is what a front end patches after a filter change: the count
// label and the table body. Filter controls are never rebuilt.
type Update struct {
	Count string
	Table render.Table
}

// Snapshot is the initial full render.
type Snapshot struct {
	Title    string
	Controls render.Controls
	Table    render.Table
}

// Page converts the snapshot for the HTML writer.
func (s Snapshot) Page() render.Page {
	return render.Page{Title: s.Title, Controls: s.Controls, Table: s.Table}
}

// Options configure a Controller.
type Options struct {
	Title          string
	Columns        []string
	Filters        []facet.Filter
	DocumentsDir   string
	SearchDebounce time.Duration
}

// OptionsFromConfig maps the viewer section of the configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	filters := make([]facet.Filter, len(cfg.Viewer.Filters))
	for i, f := range cfg.Viewer.Filters {
		filters[i] = facet.Filter{Column: f.Column, ID: f.ID, AllLabel: f.AllLabel}
	}
	return Options{
		Title:          cfg.Viewer.Title,
		Columns:        append([]string(nil), cfg.Viewer.Columns...),
		Filters:        filters,
		DocumentsDir:   cfg.Viewer.DocumentsDir,
		SearchDebounce: cfg.GetSearchDebounce(),
	}
}

// Controller applies selection, search and clear events to its State.
// It is driven from a single event loop and is not safe for concurrent
// use.
type Controller struct {
	state *State
	opts  Options

	// seq identifies the latest queued search; older requests are stale.
	seq     uint64
	pending string
	queued  bool

	log *logging.Logger
}

// New builds a Controller over ds.
func New(ds *dataset.Dataset, opts Options) *Controller {
	if opts.SearchDebounce <= 0 {
		opts.SearchDebounce = config.DefaultSearchDebounce
	}
	return &Controller{
		state: NewState(ds, opts.Filters),
		opts:  opts,
		log:   logging.Get(logging.CategoryController),
	}
}

// State exposes the owned state for read-only use.
func (c *Controller) State() *State { return c.state }

// Options returns the controller configuration.
func (c *Controller) Options() Options { return c.opts }

// Debounce returns the search idle delay.
func (c *Controller) Debounce() time.Duration { return c.opts.SearchDebounce }

func (c *Controller) renderOptions() render.Options {
	return render.Options{Columns: c.opts.Columns, DocumentsDir: c.opts.DocumentsDir}
}

// Snapshot renders the whole page for the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Title:    c.opts.Title,
		Controls: c.state.Controls(),
		Table:    c.state.Table(c.renderOptions()),
	}
}

// Select sets (or with "" clears) the selection for column and refilters.
// A search still waiting on its debounce is applied along with it.
func (c *Controller) Select(column, value string) Update {
	if c.queued {
		c.seq++
		c.queued = false
		c.state.Criteria.Search = c.pending
	}
	c.state.Criteria.Set(column, value)
	c.log.Debug("selection %s=%q", column, value)
	return c.apply()
}

// QueueSearch records term as the latest search request and returns its
// sequence number. Nothing is filtered until CommitSearch is called with
// that number.
func (c *Controller) QueueSearch(term string) uint64 {
	c.seq++
	c.pending = term
	c.queued = true
	return c.seq
}

// CommitSearch applies the pending search if seq is still the latest
// request. A superseded request is dropped and reports false.
func (c *Controller) CommitSearch(seq uint64) (Update, bool) {
	if !c.queued || seq != c.seq {
		c.log.Debug("dropping stale search request %d (latest %d)", seq, c.seq)
		return Update{}, false
	}
	c.queued = false
	c.state.Criteria.Search = c.pending
	return c.apply(), true
}

// Search applies term immediately, discarding any queued request.
func (c *Controller) Search(term string) Update {
	c.seq++
	c.queued = false
	c.state.Criteria.Search = term
	return c.apply()
}

// ClearAll resets every selection and the search, drops any queued
// search and restores the full dataset.
func (c *Controller) ClearAll() Update {
	c.seq++
	c.queued = false
	c.pending = ""
	c.state.Criteria = filter.Criteria{}
	c.log.Debug("filters cleared")
	return c.apply()
}

// Criteria returns a copy of the active criteria.
func (c *Controller) Criteria() filter.Criteria {
	return c.state.Criteria.Clone()
}

func (c *Controller) apply() Update {
	c.state.View = filter.Apply(c.state.Dataset, c.state.Criteria)
	tbl := c.state.Table(c.renderOptions())
	c.log.Debug("view now %d of %d records", tbl.Filtered, tbl.Total)
	return Update{Count: tbl.Count, Table: tbl}
}
