package sorting

import (
	"cmp"
	"slices"

	"github.com/matst80/slask-property/pkg/types"
)

type Sorter interface {
	Name() string
	Compare(a, b types.Property) int
}

type BaseSorter struct {
	name       string
	isReversed bool
	fn         func(p types.Property) float64
}

func NewBaseSorter(name string, fn func(p types.Property) float64, isReversed bool) Sorter {
	return &BaseSorter{
		name:       name,
		isReversed: isReversed,
		fn:         fn,
	}
}

func (s *BaseSorter) Name() string {
	return s.name
}

// Compare orders ascending by score, descending when reversed. Equal scores
// compare as 0 so a stable sort keeps their relative order.
func (s *BaseSorter) Compare(a, b types.Property) int {
	if s.isReversed {
		return cmp.Compare(s.fn(b), s.fn(a))
	}
	return cmp.Compare(s.fn(a), s.fn(b))
}

func priceScore(p types.Property) float64 {
	return float64(p.Price)
}

func NewPriceSorter() Sorter {
	return NewBaseSorter("price", priceScore, false)
}

func NewPriceDescSorter() Sorter {
	return NewBaseSorter("price_desc", priceScore, true)
}

func NewIndexSorter() Sorter {
	return NewBaseSorter("index", func(p types.Property) float64 {
		return float64(p.Index)
	}, false)
}

// ForOrder returns the sorter of a filter panel sort order, nil means keep the
// current order.
func ForOrder(order types.SortOrder) Sorter {
	switch order {
	case types.SortPriceAscending:
		return NewPriceSorter()
	case types.SortPriceDescending:
		return NewPriceDescSorter()
	}
	return nil
}

func SortStable(properties []types.Property, s Sorter) {
	if s == nil {
		return
	}
	slices.SortStableFunc(properties, s.Compare)
}

// RestoreOriginalOrder sorts by the index the property had when loaded.
func RestoreOriginalOrder(properties []types.Property) {
	SortStable(properties, NewIndexSorter())
}
