package sorting

import (
	"testing"

	"github.com/matst80/slask-property/pkg/types"
)

func makeProperties() []types.Property {
	return []types.Property{
		{Id: "a", Index: 0, Price: 500},
		{Id: "b", Index: 1, Price: 300},
		{Id: "c", Index: 2, Price: 500},
		{Id: "d", Index: 3, Price: 100},
		{Id: "e", Index: 4, Price: 300},
	}
}

func ids(properties []types.Property) []types.PropertyId {
	ret := make([]types.PropertyId, len(properties))
	for i, p := range properties {
		ret[i] = p.Id
	}
	return ret
}

func expectIds(t *testing.T, properties []types.Property, expected ...types.PropertyId) {
	t.Helper()
	got := ids(properties)
	if len(got) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Expected %v, got %v", expected, got)
			return
		}
	}
}

func TestPriceSortingIsStable(t *testing.T) {
	items := makeProperties()
	SortStable(items, NewPriceSorter())
	expectIds(t, items, "d", "b", "e", "a", "c")
}

func TestPriceDescSortingIsStable(t *testing.T) {
	items := makeProperties()
	SortStable(items, NewPriceDescSorter())
	expectIds(t, items, "a", "c", "b", "e", "d")
}

func TestRestoreOriginalOrder(t *testing.T) {
	items := makeProperties()
	SortStable(items, NewPriceDescSorter())
	RestoreOriginalOrder(items)
	expectIds(t, items, "a", "b", "c", "d", "e")
}

func TestForOrder(t *testing.T) {
	if ForOrder(types.SortNone) != nil {
		t.Errorf("Expected no sorter for SortNone")
	}
	if s := ForOrder(types.SortPriceAscending); s == nil || s.Name() != "price" {
		t.Errorf("Expected price sorter, got %v", s)
	}
	if s := ForOrder(types.SortPriceDescending); s == nil || s.Name() != "price_desc" {
		t.Errorf("Expected price_desc sorter, got %v", s)
	}
	items := makeProperties()
	SortStable(items, nil)
	expectIds(t, items, "a", "b", "c", "d", "e")
}
