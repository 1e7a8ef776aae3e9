package listing

import (
	"errors"
	"testing"

	"github.com/matst80/slask-property/pkg/types"
)

func TestStoreKeepsOriginalOrder(t *testing.T) {
	s, err := NewStoreWith([]types.Property{
		{Id: "c", Index: 2},
		{Id: "a", Index: 0},
		{Id: "b", Index: 1},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	all := s.All()
	for i, id := range []types.PropertyId{"a", "b", "c"} {
		if all[i].Id != id {
			t.Errorf("Expected %s at %d, got %s", id, i, all[i].Id)
		}
	}
	first, ok := s.First()
	if !ok || first.Id != "a" {
		t.Errorf("Expected first to be a, got %v", first.Id)
	}
}

func TestStoreRejectsDuplicateIds(t *testing.T) {
	_, err := NewStoreWith([]types.Property{
		{Id: "a", Index: 0},
		{Id: "a", Index: 1},
	})
	if !errors.Is(err, ErrDuplicateId) {
		t.Errorf("Expected ErrDuplicateId, got %v", err)
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	s, _ := NewStoreWith([]types.Property{{Id: "a", Index: 0}, {Id: "b", Index: 1}})
	all := s.All()
	all[0], all[1] = all[1], all[0]
	if first, _ := s.First(); first.Id != "a" {
		t.Errorf("Expected store order to be unaffected, got %s first", first.Id)
	}
}

func TestStoreGet(t *testing.T) {
	s, _ := NewStoreWith([]types.Property{{Id: "a", Index: 0, Address: "1 Main St"}})
	p, ok := s.Get("a")
	if !ok || p.Address != "1 Main St" {
		t.Errorf("Expected to find a, got %v %v", p, ok)
	}
	if _, ok := s.Get("missing"); ok {
		t.Errorf("Expected missing id to not be found")
	}
	empty := NewStore()
	if _, ok := empty.First(); ok || empty.Len() != 0 {
		t.Errorf("Expected empty store")
	}
}
