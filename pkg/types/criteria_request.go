package types

import (
	"encoding/json"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/gorilla/schema"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
	decoder.RegisterConverter(AnyCount, func(value string) reflect.Value {
		c, err := ParseCountFilter(value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(c)
	})
	decoder.RegisterConverter(SortNone, func(value string) reflect.Value {
		s, err := ParseSortOrder(value)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(s)
	})
}

func clamp[T int | float64](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Sanitize keeps the price bounds inside the range offered by the filter panel.
// An inverted range is left alone, it simply matches nothing.
func (c *FilterCriteria) Sanitize() {
	c.PriceFrom = clamp(c.PriceFrom, DefaultPriceFrom, DefaultPriceTo)
	c.PriceTo = clamp(c.PriceTo, DefaultPriceFrom, DefaultPriceTo)
}

// GetCriteriaFromRequest decodes a full set of criteria. Fields that are missing
// keep their default value.
func GetCriteriaFromRequest(r *http.Request) (*FilterCriteria, error) {
	c := DefaultCriteria()
	var err error
	if r.Method == http.MethodGet {
		err = criteriaFromValues(r.URL.Query(), &c)
	} else if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		err = json.NewDecoder(r.Body).Decode(&c)
	} else {
		if err = r.ParseForm(); err == nil {
			err = criteriaFromValues(r.Form, &c)
		}
	}
	if err != nil {
		return nil, err
	}
	c.Sanitize()
	return &c, nil
}

func criteriaFromValues(values url.Values, result *FilterCriteria) error {
	err := decoder.Decode(result, values)
	if err != nil {
		return ErrInvalidValue
	}
	return nil
}

// GetFieldValueFromRequest reads the value of a single filter panel field.
func GetFieldValueFromRequest(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		body := struct {
			Value string `json:"value"`
		}{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", err
		}
		return body.Value, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", err
	}
	return r.Form.Get("value"), nil
}
