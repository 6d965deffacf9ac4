package validate

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

var jsonNull = []byte("null")

// Decimal accepts a JSON number or a numeric string. Parse failures are
// recorded instead of aborting the decode so that every field error can be
// reported together.
type Decimal struct {
	Float64 float64
	Present bool
	Null    bool
	Valid   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	d.Present = true
	if bytes.Equal(data, jsonNull) {
		d.Null = true
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		d.Float64 = num
		d.Valid = true
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil {
			d.Float64 = num
			d.Valid = true
		}
		return nil
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Present || d.Null || !d.Valid {
		return jsonNull, nil
	}
	return json.Marshal(d.Float64)
}

// Ptr returns the parsed value, mapping absent, null and unparsable input
// to nil.
func (d Decimal) Ptr() *float64 {
	if !d.Present || d.Null || !d.Valid {
		return nil
	}
	v := d.Float64
	return &v
}

// Date accepts an ISO datetime string or an ISO date string and normalizes
// both to a single timestamp. Date-only input maps to midnight UTC.
type Date struct {
	Time    time.Time
	Present bool
	Null    bool
	Valid   bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	d.Present = true
	if bytes.Equal(data, jsonNull) {
		d.Null = true
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t.UTC()
			d.Valid = true
			return nil
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Present || d.Null || !d.Valid {
		return jsonNull, nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// NullString is an optional text field that distinguishes three states: absent
// (leave unchanged on update), explicit null (clear), and a string value.
type NullString struct {
	String  string
	Present bool
	Null    bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *NullString) UnmarshalJSON(data []byte) error {
	s.Present = true
	if bytes.Equal(data, jsonNull) {
		s.Null = true
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		s.Null = true
		return nil
	}
	s.String = raw
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Present || s.Null {
		return jsonNull, nil
	}
	return json.Marshal(s.String)
}

// Trimmed returns the trimmed value, mapping empty-after-trim to nil.
func (s NullString) Trimmed() *string {
	if !s.Present || s.Null {
		return nil
	}
	v := strings.TrimSpace(s.String)
	if v == "" {
		return nil
	}
	return &v
}

// Ptr returns the raw value, mapping empty to nil without trimming.
func (s NullString) Ptr() *string {
	if !s.Present || s.Null || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}
