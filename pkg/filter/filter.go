package filter

import (
	"github.com/matst80/slask-property/pkg/sorting"
	"github.com/matst80/slask-property/pkg/types"
)

// Matches reports whether a property satisfies every criterion.
func Matches(p *types.Property, c *types.FilterCriteria) bool {
	return c.Bedrooms.Matches(p.Bedrooms) &&
		c.Bathrooms.Matches(p.Bathrooms) &&
		c.CarSpaces.Matches(p.CarSpaces) &&
		c.MatchesPrice(p.Price)
}

func IsFiltering(c *types.FilterCriteria) bool {
	return !c.IsDefault()
}

// Apply returns the matching properties in their input order, or stably sorted
// by price when a sort order is set. The input slice is left untouched.
func Apply(properties []types.Property, c *types.FilterCriteria) []types.Property {
	ret := make([]types.Property, 0, len(properties))
	for i := range properties {
		if Matches(&properties[i], c) {
			ret = append(ret, properties[i])
		}
	}
	sorting.SortStable(ret, sorting.ForOrder(c.Sort))
	return ret
}

type Result struct {
	Properties  []types.Property `json:"properties"`
	IsFiltering bool             `json:"isFiltering"`
}

func Run(properties []types.Property, c *types.FilterCriteria) Result {
	return Result{
		Properties:  Apply(properties, c),
		IsFiltering: IsFiltering(c),
	}
}

// Displayed is the list the views should show, the full set unless filtering.
func (r *Result) Displayed(all []types.Property) []types.Property {
	if r.IsFiltering {
		return r.Properties
	}
	return all
}

// ShowNoResults is only true when filtering is what emptied the list.
func (r *Result) ShowNoResults() bool {
	return r.IsFiltering && len(r.Properties) == 0
}
