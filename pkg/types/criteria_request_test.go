package types

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCriteriaFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/filter?bedrooms=2&cars=any&priceTo=2000000&sort=0&page=4", nil)
	c, err := GetCriteriaFromRequest(r)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.Bedrooms != 2 || !c.CarSpaces.IsAny() || !c.Bathrooms.IsAny() {
		t.Errorf("Expected counts to be decoded, got %+v", c)
	}
	if c.PriceTo != DefaultPriceTo {
		t.Errorf("Expected price to be clamped to %d, got %d", DefaultPriceTo, c.PriceTo)
	}
	if c.Sort != SortPriceAscending {
		t.Errorf("Expected ascending sort, got %v", c.Sort)
	}
}

func TestCriteriaFromForm(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/filter", strings.NewReader("bathrooms=1&priceFrom=-5"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c, err := GetCriteriaFromRequest(r)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.Bathrooms != 1 || c.PriceFrom != DefaultPriceFrom {
		t.Errorf("Expected bathrooms 1 and clamped price, got %+v", c)
	}
}

func TestCriteriaFromJson(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/filter", strings.NewReader(`{"bedrooms":"4"}`))
	r.Header.Set("Content-Type", "application/json")
	c, err := GetCriteriaFromRequest(r)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.Bedrooms != 4 || c.PriceTo != DefaultPriceTo {
		t.Errorf("Expected bedrooms 4 with default price, got %+v", c)
	}
}

func TestCriteriaRejectsInvalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/filter?bedrooms=many", nil)
	if _, err := GetCriteriaFromRequest(r); err == nil {
		t.Errorf("Expected error for invalid bedrooms")
	}
}

func TestFieldValueFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/filter/bedrooms", strings.NewReader("value=3"))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if v, err := GetFieldValueFromRequest(r); err != nil || v != "3" {
		t.Errorf("Expected 3, got %q (%v)", v, err)
	}
	r = httptest.NewRequest(http.MethodPost, "/filter/sort", strings.NewReader(`{"value":"desc"}`))
	r.Header.Set("Content-Type", "application/json")
	if v, err := GetFieldValueFromRequest(r); err != nil || v != "desc" {
		t.Errorf("Expected desc, got %q (%v)", v, err)
	}
}
