package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateAddDaysIgnoresZones(t *testing.T) {
	start := NewDate(2025, time.April, 15)
	if got := start.AddDays(7).String(); got != "2025-04-22" {
		t.Fatalf("expected 2025-04-22, got %s", got)
	}
	// Crosses the US spring-forward weekend.
	if got := NewDate(2025, time.March, 8).AddDays(1).String(); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", got)
	}
	if got := NewDate(2024, time.February, 28).AddDays(1).String(); got != "2024-02-29" {
		t.Fatalf("expected leap day, got %s", got)
	}
	if got := NewDate(2025, time.December, 31).AddDays(365).String(); got != "2026-12-31" {
		t.Fatalf("expected 2026-12-31, got %s", got)
	}
}

func TestDateOfUsesOwnLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	late := time.Date(2025, time.April, 15, 23, 30, 0, 0, tokyo)
	if got := DateOf(late).String(); got != "2025-04-15" {
		t.Fatalf("expected local calendar day, got %s", got)
	}

	now := time.Date(2025, time.April, 15, 20, 0, 0, 0, time.UTC)
	if got := Today(now, tokyo).String(); got != "2025-04-16" {
		t.Fatalf("expected tokyo day 2025-04-16, got %s", got)
	}
	if got := Today(now, nil).String(); got != "2025-04-15" {
		t.Fatalf("expected utc day 2025-04-15, got %s", got)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2025-04-15", want: "2025-04-15"},
		{in: " 2025-04-15 ", want: "2025-04-15"},
		{in: "2025-04-15T22:00:00-05:00", want: "2025-04-15"},
		{in: "15/04/2025", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseDate(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDate(%q) unexpected error: %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("ParseDate(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Start Date  `json:"start_date"`
		End   *Date `json:"end_date,omitempty"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"start_date":"2025-04-15"}`), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Start.String() != "2025-04-15" {
		t.Fatalf("unexpected start %s", got.Start)
	}

	out, err := json.Marshal(payload{Start: NewDate(2025, time.April, 22)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"start_date":"2025-04-22"}` {
		t.Fatalf("unexpected json %s", out)
	}

	if err := json.Unmarshal([]byte(`{"start_date":"tomorrow"}`), &got); err == nil {
		t.Fatal("expected invalid date to fail")
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan(time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC)); err != nil || d.String() != "2025-04-15" {
		t.Fatalf("scan time: %v %s", err, d)
	}
	if err := d.Scan("2025-04-16 00:00:00+00:00"); err != nil || d.String() != "2025-04-16" {
		t.Fatalf("scan string: %v %s", err, d)
	}
	if err := d.Scan([]byte("2025-04-17")); err != nil || d.String() != "2025-04-17" {
		t.Fatalf("scan bytes: %v %s", err, d)
	}
	if err := d.Scan(nil); err != nil || !d.IsZero() {
		t.Fatalf("scan nil: %v %s", err, d)
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected int scan to fail")
	}

	v, err := NewDate(2025, time.April, 15).Value()
	if err != nil || v != "2025-04-15" {
		t.Fatalf("unexpected value %v %v", v, err)
	}
}
