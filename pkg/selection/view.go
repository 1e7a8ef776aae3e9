package selection

import "github.com/matst80/slask-property/pkg/types"

// View is the read only snapshot handed to the list and map views.
type View struct {
	Properties    []types.Property     `json:"properties"`
	ActiveId      types.PropertyId     `json:"activeId,omitempty"`
	IsFiltering   bool                 `json:"isFiltering"`
	ShowNoResults bool                 `json:"showNoResults"`
	FilterVisible bool                 `json:"filterVisible"`
	Criteria      types.FilterCriteria `json:"criteria"`
	Total         int                  `json:"total"`
}

func (v *View) Active() (types.Property, bool) {
	for _, p := range v.Properties {
		if p.Id == v.ActiveId {
			return p, true
		}
	}
	return types.Property{}, false
}

func (v *View) IsActive(id types.PropertyId) bool {
	return v.ActiveId != "" && v.ActiveId == id
}

// State is what gets persisted between requests of a session.
type State struct {
	Criteria      types.FilterCriteria `json:"criteria"`
	ActiveId      types.PropertyId     `json:"activeId,omitempty"`
	FilterVisible bool                 `json:"filterVisible,omitempty"`
}

func DefaultState() State {
	return State{
		Criteria: types.DefaultCriteria(),
	}
}
