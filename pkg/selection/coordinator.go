package selection

import (
	"errors"
	"slices"
	"sync"

	"github.com/matst80/slask-property/pkg/filter"
	"github.com/matst80/slask-property/pkg/listing"
	"github.com/matst80/slask-property/pkg/scroll"
	"github.com/matst80/slask-property/pkg/types"
)

var ErrPropertyNotFound = errors.New("property not found")

type Listener interface {
	Render(view View)
}

type ListenerFunc func(view View)

func (f ListenerFunc) Render(view View) {
	f(view)
}

// Coordinator owns the shared state of one listing page: criteria, the derived
// list and the active property. All transitions go through its methods and
// listeners receive the views in the order the transitions happened.
type Coordinator struct {
	mu            sync.Mutex
	notifyMu      sync.Mutex
	store         *listing.Store
	all           []types.Property
	criteria      types.FilterCriteria
	result        filter.Result
	activeId      types.PropertyId
	filterVisible bool
	scroller      scroll.Scroller
	listeners     []Listener
}

func NewCoordinator(store *listing.Store, scroller scroll.Scroller) *Coordinator {
	c := &Coordinator{
		store:     store,
		all:       store.All(),
		criteria:  types.DefaultCriteria(),
		scroller:  scroller,
		listeners: make([]Listener, 0),
	}
	if first, ok := store.First(); ok {
		c.activeId = first.Id
	}
	c.recomputeUnsafe()
	return c
}

// transition applies fn under the state lock and delivers the resulting view.
// notifyMu is held until every listener has rendered, so a later transition
// can not overtake an earlier one. Nothing is delivered when fn fails.
func (c *Coordinator) transition(fn func() error) error {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if err := fn(); err != nil {
		c.mu.Unlock()
		return err
	}
	view := c.viewUnsafe()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, l := range listeners {
		l.Render(view)
	}
	return nil
}

func (c *Coordinator) AddListener(l ...Listener) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.mu.Lock()
	c.listeners = append(c.listeners, l...)
	view := c.viewUnsafe()
	c.mu.Unlock()
	for _, listener := range l {
		listener.Render(view)
	}
}

// Select makes the property active. Selections coming from a map marker also
// scroll the matching card into view, the card is already visible otherwise.
func (c *Coordinator) Select(p types.Property, causedByMapClick bool) {
	_ = c.transition(func() error {
		c.activeId = p.Id
		if causedByMapClick && c.scroller != nil {
			c.scroller.ScrollTo(scroll.NewRequest("#" + p.CardAnchor()))
		}
		return nil
	})
}

func (c *Coordinator) SelectById(id types.PropertyId, causedByMapClick bool) (types.Property, error) {
	p, ok := c.store.Get(id)
	if !ok {
		return p, ErrPropertyNotFound
	}
	c.Select(p, causedByMapClick)
	return p, nil
}

func (c *Coordinator) SetCriteria(criteria types.FilterCriteria) {
	_ = c.transition(func() error {
		c.criteria = criteria
		c.recomputeUnsafe()
		return nil
	})
}

// UpdateCriterion changes one named filter field and refilters right away.
func (c *Coordinator) UpdateCriterion(name, value string) error {
	return c.transition(func() error {
		if err := c.criteria.Set(name, value); err != nil {
			return err
		}
		c.recomputeUnsafe()
		return nil
	})
}

// Clear resets the criteria, restores the original order and makes the first
// property active again.
func (c *Coordinator) Clear() {
	_ = c.transition(func() error {
		c.criteria = types.DefaultCriteria()
		c.all = c.store.All()
		c.activeId = ""
		if len(c.all) > 0 {
			c.activeId = c.all[0].Id
		}
		c.recomputeUnsafe()
		return nil
	})
}

func (c *Coordinator) ToggleFilter() bool {
	visible := false
	_ = c.transition(func() error {
		c.filterVisible = !c.filterVisible
		visible = c.filterVisible
		return nil
	})
	return visible
}

// Restore applies previously saved state. An active id that no longer exists
// is ignored and the usual reset rule picks the active property.
func (c *Coordinator) Restore(state State) {
	_ = c.transition(func() error {
		c.criteria = state.Criteria
		c.filterVisible = state.FilterVisible
		if _, ok := c.store.Get(state.ActiveId); ok {
			c.activeId = state.ActiveId
		}
		c.recomputeUnsafe()
		return nil
	})
}

// Read calls fn with the current view while no transition can deliver, so
// listener state read inside fn matches the view.
func (c *Coordinator) Read(fn func(view View)) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	fn(c.Snapshot())
}

func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Criteria:      c.criteria,
		ActiveId:      c.activeId,
		FilterVisible: c.filterVisible,
	}
}

func (c *Coordinator) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewUnsafe()
}

// Active resolves the active id, a dangling id reads as no active property.
func (c *Coordinator) Active() (types.Property, bool) {
	c.mu.Lock()
	id := c.activeId
	c.mu.Unlock()
	if id == "" {
		return types.Property{}, false
	}
	return c.store.Get(id)
}

func (c *Coordinator) recomputeUnsafe() {
	c.criteria.Sanitize()
	c.result = filter.Run(c.all, &c.criteria)
	displayed := c.result.Displayed(c.all)
	if !slices.ContainsFunc(displayed, func(p types.Property) bool { return p.Id == c.activeId }) {
		c.activeId = ""
		if len(displayed) > 0 {
			c.activeId = displayed[0].Id
		}
	}
}

func (c *Coordinator) viewUnsafe() View {
	return View{
		Properties:    slices.Clone(c.result.Displayed(c.all)),
		ActiveId:      c.activeId,
		IsFiltering:   c.result.IsFiltering,
		ShowNoResults: c.result.ShowNoResults(),
		FilterVisible: c.filterVisible,
		Criteria:      c.criteria,
		Total:         len(c.all),
	}
}
