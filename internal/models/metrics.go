package models

import (
	"encoding/json"
	"fmt"
)

// MetricKind discriminates the value held by a MetricValue.
type MetricKind int

const (
	MetricNumber MetricKind = iota
	MetricString
)

// MetricValue is a tagged numeric-or-string value. Metric keys are
// category-dependent and not statically known (distance_km: 5.0,
// wake_time: "06:30"), so entries carry an open bag of these.
type MetricValue struct {
	Kind   MetricKind
	Number float64
	Text   string
}

// Num creates a numeric metric value.
func Num(v float64) MetricValue {
	return MetricValue{Kind: MetricNumber, Number: v}
}

// Str creates a string metric value.
func Str(s string) MetricValue {
	return MetricValue{Kind: MetricString, Text: s}
}

// Numeric returns the numeric value and whether this metric is numeric.
func (v MetricValue) Numeric() (float64, bool) {
	if v.Kind == MetricNumber {
		return v.Number, true
	}
	return 0, false
}

// MarshalJSON encodes the value as a bare JSON number or string.
func (v MetricValue) MarshalJSON() ([]byte, error) {
	if v.Kind == MetricNumber {
		return json.Marshal(v.Number)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts JSON numbers, booleans and strings; booleans
// are stored as 0/1 numbers, anything else is rejected.
func (v *MetricValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case float64:
		*v = Num(val)
	case bool:
		n := 0.0
		if val {
			n = 1.0
		}
		*v = Num(n)
	case string:
		*v = Str(val)
	default:
		return fmt.Errorf("unsupported metric value type %T", raw)
	}
	return nil
}

// Metrics is the open string-keyed metric bag attached to an entry.
type Metrics map[string]MetricValue

// bookkeepingKeys are never treated as metrics during aggregation.
var bookkeepingKeys = map[string]bool{
	"id":          true,
	"year":        true,
	"month":       true,
	"week":        true,
	"day_of_week": true,
}

// IsBookkeepingKey reports whether key is an internal bookkeeping key
// excluded from metric aggregation.
func IsBookkeepingKey(key string) bool {
	return bookkeepingKeys[key]
}
