// Package generate turns a natural-language request into a conflict-free week
// of events: it prompts an LLM, decodes its loosely typed answer, validates
// every candidate and resolves overlaps.
package generate

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Response is the JSON document the model is asked to return.
type Response struct {
	Events   []Candidate  `json:"events"`
	Settings *RawSettings `json:"settings,omitempty"`
	Notes    FlexString   `json:"notes"`
}

// Candidate is one event as emitted by the model. Every field is optional and
// leniently typed; ValidateCandidate decides whether it becomes an Event.
type Candidate struct {
	ID          FlexString `json:"id"` // ignored; events get fresh IDs
	Day         FlexInt    `json:"day"`
	StartHour   FlexInt    `json:"startHour"`
	StartMinute FlexInt    `json:"startMinute"`
	EndHour     FlexInt    `json:"endHour"`
	EndMinute   FlexInt    `json:"endMinute"`
	Color       FlexString `json:"color"`
	Title       FlexString `json:"title"`
	Description FlexString `json:"description"`
	TaskChecked FlexBool   `json:"taskChecked"`
	Priority    FlexString `json:"priority"`
}

// RawSettings is the optional settings object of a Response.
type RawSettings struct {
	WeekStartsOnSunday FlexBool `json:"weekStartsOnSunday"`
	Use12HourFormat    FlexBool `json:"use12HourFormat"`
	ShowDates          FlexBool `json:"showDates"`
	WorkingHoursStart  FlexInt  `json:"workingHoursStart"`
	WorkingHoursEnd    FlexInt  `json:"workingHoursEnd"`
	TimeIncrement      FlexInt  `json:"timeIncrement"`
}

var jsonNull = []byte("null")

// FlexInt accepts a JSON number, a numeric string or null. Fractions are
// truncated. Values of any other type decode as unset instead of failing the
// whole response.
type FlexInt struct {
	Value int
	Set   bool
}

// Int returns a set FlexInt.
func Int(v int) FlexInt { return FlexInt{Value: v, Set: true} }

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil
	}

	var raw string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
	} else {
		raw = string(data)
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || math.Abs(n) > math.MaxInt32 {
		return nil
	}
	*f = FlexInt{Value: int(n), Set: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return jsonNull, nil
	}
	return []byte(strconv.Itoa(f.Value)), nil
}

// FlexString accepts a JSON string, number or bool. Anything else is unset.
type FlexString string

// String returns the value as a plain string.
func (f FlexString) String() string { return string(f) }

func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*f = FlexString(s)
		}
	case 'n', '{', '[':
		// null, objects and arrays carry no usable text
	default:
		*f = FlexString(data)
	}
	return nil
}

// FlexBool accepts true/false, "true"/"false", 0/1 or null.
type FlexBool struct {
	Value bool
	Set   bool
}

// Bool returns a set FlexBool.
func Bool(v bool) FlexBool { return FlexBool{Value: v, Set: true} }

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	*f = FlexBool{}
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if v, err := strconv.ParseBool(strings.ToLower(raw)); err == nil {
		*f = FlexBool{Value: v, Set: true}
	}
	return nil
}

func (f FlexBool) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return jsonNull, nil
	}
	return []byte(strconv.FormatBool(f.Value)), nil
}
