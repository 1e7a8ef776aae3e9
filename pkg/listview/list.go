package listview

import (
	"sync"

	"github.com/matst80/slask-property/pkg/selection"
	"github.com/matst80/slask-property/pkg/types"
)

const NoResultsMessage = "No properties were found."

type Card struct {
	*types.Property
	Anchor string `json:"anchor"`
	Active bool   `json:"active"`
}

type Selector interface {
	Select(p types.Property, causedByMapClick bool)
}

type State struct {
	Cards   []Card `json:"cards"`
	Empty   bool   `json:"isEmpty"`
	Warning string `json:"warning,omitempty"`
}

type List struct {
	mu       sync.RWMutex
	selector Selector
	state    State
}

func NewList(selector Selector) *List {
	return &List{
		selector: selector,
		state:    State{Cards: make([]Card, 0), Empty: true},
	}
}

func (l *List) Render(view selection.View) {
	cards := make([]Card, len(view.Properties))
	for i := range view.Properties {
		p := view.Properties[i]
		cards[i] = Card{
			Property: &p,
			Anchor:   p.CardAnchor(),
			Active:   view.IsActive(p.Id),
		}
	}
	state := State{
		Cards: cards,
		Empty: len(cards) == 0,
	}
	if view.ShowNoResults {
		state.Warning = NoResultsMessage
	}
	l.mu.Lock()
	l.state = state
	l.mu.Unlock()
}

// Click selects the card's property. The card is already on screen so no
// scroll is requested.
func (l *List) Click(id types.PropertyId) error {
	l.mu.RLock()
	var found *types.Property
	for _, c := range l.state.Cards {
		if c.Id == id {
			found = c.Property
			break
		}
	}
	l.mu.RUnlock()
	if found == nil {
		return selection.ErrPropertyNotFound
	}
	if l.selector != nil {
		l.selector.Select(*found, false)
	}
	return nil
}

func (l *List) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}
