package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestDefaultCriteria(t *testing.T) {
	c := DefaultCriteria()
	if !c.IsDefault() {
		t.Errorf("Expected default criteria to report default")
	}
	if !c.MatchesPrice(0) || !c.MatchesPrice(DefaultPriceTo) || !c.MatchesPrice(4500000) {
		t.Errorf("Expected default price range to match everything")
	}
}

func TestParseCountFilter(t *testing.T) {
	cases := []struct {
		input    string
		expected CountFilter
		err      bool
	}{
		{"", AnyCount, false},
		{"any", AnyCount, false},
		{"Any", AnyCount, false},
		{"0", 0, false},
		{" 3 ", 3, false},
		{"-1", AnyCount, true},
		{"three", AnyCount, true},
	}
	for _, tc := range cases {
		got, err := ParseCountFilter(tc.input)
		if (err != nil) != tc.err {
			t.Errorf("Expected error %v for %q, got %v", tc.err, tc.input, err)
		}
		if got != tc.expected {
			t.Errorf("Expected %v for %q, got %v", tc.expected, tc.input, got)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	cases := map[string]SortOrder{
		"":           SortNone,
		"any":        SortNone,
		"0":          SortPriceAscending,
		"price":      SortPriceAscending,
		"1":          SortPriceDescending,
		"price_desc": SortPriceDescending,
		"DESC":       SortPriceDescending,
	}
	for input, expected := range cases {
		got, err := ParseSortOrder(input)
		if err != nil || got != expected {
			t.Errorf("Expected %v for %q, got %v (%v)", expected, input, got, err)
		}
	}
	if _, err := ParseSortOrder("2"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected invalid value, got %v", err)
	}
}

func TestCountMatches(t *testing.T) {
	if !AnyCount.Matches(7) {
		t.Errorf("Expected any to match")
	}
	if !CountFilter(0).Matches(0) || CountFilter(0).Matches(1) {
		t.Errorf("Expected exact match for zero")
	}
}

func TestMatchesPriceInclusive(t *testing.T) {
	c := DefaultCriteria()
	c.PriceFrom = 500000
	c.PriceTo = 600000
	for price, expected := range map[int]bool{499999: false, 500000: true, 600000: true, 600001: false} {
		if c.MatchesPrice(price) != expected {
			t.Errorf("Expected %v for %d", expected, price)
		}
	}
	c.PriceFrom = 700000
	if c.MatchesPrice(650000) {
		t.Errorf("Expected inverted range to match nothing")
	}
}

func TestSetByFieldName(t *testing.T) {
	c := DefaultCriteria()
	if err := c.Set("filterBedrooms", "3"); err != nil || c.Bedrooms != 3 {
		t.Errorf("Expected bedrooms 3, got %v (%v)", c.Bedrooms, err)
	}
	if err := c.Set("cars", "any"); err != nil || !c.CarSpaces.IsAny() {
		t.Errorf("Expected any car spaces, got %v (%v)", c.CarSpaces, err)
	}
	if err := c.Set("priceTo", "800000"); err != nil || c.PriceTo != 800000 {
		t.Errorf("Expected price to 800000, got %d (%v)", c.PriceTo, err)
	}
	if err := c.Set("priceTo", ""); err != nil || c.PriceTo != DefaultPriceTo {
		t.Errorf("Expected empty price to reset, got %d (%v)", c.PriceTo, err)
	}
	if c.IsDefault() {
		t.Errorf("Expected criteria with bedrooms to not be default")
	}
}

func TestSetClampsPrices(t *testing.T) {
	c := DefaultCriteria()
	if err := c.Set("priceTo", "2000000"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.PriceTo != DefaultPriceTo {
		t.Errorf("Expected price to be clamped to %d, got %d", DefaultPriceTo, c.PriceTo)
	}
	if err := c.Set("priceFrom", "-10"); err != nil || c.PriceFrom != DefaultPriceFrom {
		t.Errorf("Expected price from clamped to 0, got %d (%v)", c.PriceFrom, err)
	}

	raw := DefaultCriteria()
	raw.PriceTo = 2000000
	if raw.MatchesPrice(3000000) {
		t.Errorf("Expected a price above priceTo to be excluded")
	}
}

func TestSetKeepsCriteriaOnError(t *testing.T) {
	c := DefaultCriteria()
	_ = c.Set("bedrooms", "2")
	if err := c.Set("bedrooms", "lots"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected invalid value, got %v", err)
	}
	if err := c.Set("pool", "1"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Expected unknown field, got %v", err)
	}
	if c.Bedrooms != 2 {
		t.Errorf("Expected bedrooms to stay 2, got %v", c.Bedrooms)
	}
}

func TestCriteriaJson(t *testing.T) {
	c := FilterCriteria{}
	data := `{"bedrooms":3,"bathrooms":"any","cars":"1","priceFrom":0,"priceTo":1000001,"sort":"desc"}`
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if c.Bedrooms != 3 || !c.Bathrooms.IsAny() || c.CarSpaces != 1 || c.Sort != SortPriceDescending {
		t.Errorf("Expected decoded criteria, got %+v", c)
	}
	out, err := json.Marshal(DefaultCriteria())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	expected := `{"bedrooms":"any","bathrooms":"any","cars":"any","priceFrom":0,"priceTo":1000001,"sort":"any"}`
	if string(out) != expected {
		t.Errorf("Expected %s, got %s", expected, out)
	}
}
