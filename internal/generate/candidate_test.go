package generate

import (
	"encoding/json"
	"testing"
)

func TestFlexIntUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantSet bool
	}{
		{input: `9`, want: 9, wantSet: true},
		{input: `9.75`, want: 9, wantSet: true},
		{input: `"14"`, want: 14, wantSet: true},
		{input: `" 7 "`, want: 7, wantSet: true},
		{input: `-3`, want: -3, wantSet: true},
		{input: `null`},
		{input: `""`},
		{input: `"noon"`},
		{input: `true`},
		{input: `{"h": 9}`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got FlexInt
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%s) error: %v", tt.input, err)
			}
			if got.Set != tt.wantSet || got.Value != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want {Value:%d Set:%v}", tt.input, got, tt.want, tt.wantSet)
			}
		})
	}
}

func TestFlexStringAndBoolUnmarshal(t *testing.T) {
	var c Candidate
	input := `{"title": 42, "description": null, "color": ["red"], "taskChecked": "true", "priority": "high"}`
	if err := json.Unmarshal([]byte(input), &c); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if c.Title != "42" {
		t.Errorf("Title = %q, want 42", c.Title)
	}
	if c.Description != "" || c.Color != "" {
		t.Errorf("expected empty description and color, got %q %q", c.Description, c.Color)
	}
	if !c.TaskChecked.Set || !c.TaskChecked.Value {
		t.Errorf("TaskChecked = %+v, want set true", c.TaskChecked)
	}
	if c.Priority != "high" {
		t.Errorf("Priority = %q", c.Priority)
	}
}

func TestResponseUnmarshalMixedTypes(t *testing.T) {
	input := `{
		"events": [
			{"day": "1", "startHour": 9, "startMinute": "30", "endHour": 10.0, "endMinute": null, "title": "Gym"}
		],
		"settings": {"timeIncrement": "15", "use12HourFormat": 1}
	}`

	var resp Response
	if err := json.Unmarshal([]byte(input), &resp); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("got %d events", len(resp.Events))
	}
	c := resp.Events[0]
	if c.Day != Int(1) || c.StartMinute != Int(30) || c.EndHour != Int(10) || c.EndMinute.Set {
		t.Errorf("unexpected candidate: %+v", c)
	}
	if resp.Settings == nil || resp.Settings.TimeIncrement != Int(15) || resp.Settings.Use12HourFormat != Bool(true) {
		t.Errorf("unexpected settings: %+v", resp.Settings)
	}
}
