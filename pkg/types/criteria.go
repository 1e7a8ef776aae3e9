package types

import (
	"errors"
	"strconv"
	"strings"
)

const (
	DefaultPriceFrom = 0
	// DefaultPriceTo is the "no upper bound" option of the price select.
	DefaultPriceTo = 1000001
)

var (
	ErrUnknownField = errors.New("unknown filter field")
	ErrInvalidValue = errors.New("invalid filter value")
)

// CountFilter is either AnyCount or an exact count to match.
type CountFilter int

const AnyCount CountFilter = -1

func (c CountFilter) IsAny() bool {
	return c < 0
}

func (c CountFilter) Matches(value int) bool {
	return c.IsAny() || int(c) == value
}

func (c CountFilter) String() string {
	if c.IsAny() {
		return "any"
	}
	return strconv.Itoa(int(c))
}

func (c CountFilter) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CountFilter) UnmarshalJSON(data []byte) error {
	parsed, err := ParseCountFilter(unquote(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// unquote accepts both 3 and "3" from json, null reads as empty.
func unquote(data []byte) string {
	v := strings.TrimSpace(string(data))
	if v == "null" {
		return ""
	}
	return strings.Trim(v, `"`)
}

func ParseCountFilter(value string) (CountFilter, error) {
	v := strings.TrimSpace(value)
	if v == "" || strings.EqualFold(v, "any") {
		return AnyCount, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return AnyCount, ErrInvalidValue
	}
	return CountFilter(n), nil
}

type SortOrder uint8

const (
	SortNone SortOrder = iota
	SortPriceAscending
	SortPriceDescending
)

func (s SortOrder) String() string {
	switch s {
	case SortPriceAscending:
		return "asc"
	case SortPriceDescending:
		return "desc"
	}
	return "any"
}

func (s SortOrder) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *SortOrder) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSortOrder(unquote(data))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSortOrder accepts the select values of the filter panel ("0", "1")
// as well as the names used by the api.
func ParseSortOrder(value string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "any", "none":
		return SortNone, nil
	case "0", "asc", "price":
		return SortPriceAscending, nil
	case "1", "desc", "price_desc":
		return SortPriceDescending, nil
	}
	return SortNone, ErrInvalidValue
}

type FilterCriteria struct {
	Bedrooms  CountFilter `json:"bedrooms" schema:"bedrooms"`
	Bathrooms CountFilter `json:"bathrooms" schema:"bathrooms"`
	CarSpaces CountFilter `json:"cars" schema:"cars"`
	PriceFrom int         `json:"priceFrom" schema:"priceFrom"`
	PriceTo   int         `json:"priceTo" schema:"priceTo"`
	Sort      SortOrder   `json:"sort" schema:"sort"`
}

func DefaultCriteria() FilterCriteria {
	return FilterCriteria{
		Bedrooms:  AnyCount,
		Bathrooms: AnyCount,
		CarSpaces: AnyCount,
		PriceFrom: DefaultPriceFrom,
		PriceTo:   DefaultPriceTo,
		Sort:      SortNone,
	}
}

func (c *FilterCriteria) IsDefault() bool {
	return c.Bedrooms.IsAny() &&
		c.Bathrooms.IsAny() &&
		c.CarSpaces.IsAny() &&
		c.Sort == SortNone &&
		c.PriceFrom == DefaultPriceFrom &&
		c.PriceTo == DefaultPriceTo
}

// MatchesPrice checks the inclusive price range. DefaultPriceTo is the open
// ended "1M+" option and has no upper bound, any other value is a hard limit.
func (c *FilterCriteria) MatchesPrice(price int) bool {
	if price < c.PriceFrom {
		return false
	}
	return c.PriceTo == DefaultPriceTo || price <= c.PriceTo
}

// Set updates one criterion by the name of its filter panel field.
func (c *FilterCriteria) Set(name, value string) error {
	next := *c
	var err error
	switch name {
	case "bedrooms", "filterBedrooms":
		next.Bedrooms, err = ParseCountFilter(value)
	case "bathrooms", "filterBathrooms":
		next.Bathrooms, err = ParseCountFilter(value)
	case "cars", "carSpaces", "filterCars":
		next.CarSpaces, err = ParseCountFilter(value)
	case "sort", "filterSort":
		next.Sort, err = ParseSortOrder(value)
	case "priceFrom":
		next.PriceFrom, err = parsePrice(value, DefaultPriceFrom)
	case "priceTo":
		next.PriceTo, err = parsePrice(value, DefaultPriceTo)
	default:
		return ErrUnknownField
	}
	if err != nil {
		return err
	}
	next.Sanitize()
	*c = next
	return nil
}

func parsePrice(value string, fallback int) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, ErrInvalidValue
	}
	return n, nil
}
