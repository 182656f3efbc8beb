package period

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/julianstephens/habitual/internal/errors"
)

func utcCalendar() Calendar {
	return NewCalendar(time.UTC)
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Periodicity
		wantErr bool
	}{
		{input: "daily", want: Daily},
		{input: "Weekly", want: Weekly},
		{input: "  DAILY ", want: Daily},
		{input: "monthly", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrInvalidPeriodicity) {
					t.Fatalf("Parse(%q) error = %v, want ErrInvalidPeriodicity", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPeriodicityText(t *testing.T) {
	var p Periodicity
	if err := p.UnmarshalText([]byte("weekly")); err != nil {
		t.Fatalf("UnmarshalText failed: %v", err)
	}
	if p != Weekly {
		t.Errorf("UnmarshalText = %v, want weekly", p)
	}

	if _, err := Periodicity(0).MarshalText(); !errors.Is(err, apperrors.ErrInvalidPeriodicity) {
		t.Errorf("MarshalText on zero value error = %v, want ErrInvalidPeriodicity", err)
	}
	if Periodicity(7).Valid() {
		t.Error("Periodicity(7).Valid() = true, want false")
	}
}

func TestDailyKeys(t *testing.T) {
	cal := utcCalendar()

	tests := []struct {
		name string
		a, b time.Time
		same bool
	}{
		{
			name: "start and end of day",
			a:    at(2024, time.January, 15, 0, 0),
			b:    time.Date(2024, time.January, 15, 23, 59, 59, 999999999, time.UTC),
			same: true,
		},
		{
			name: "midnight boundary",
			a:    time.Date(2024, time.January, 15, 23, 59, 59, 0, time.UTC),
			b:    at(2024, time.January, 16, 0, 0),
			same: false,
		},
		{
			name: "new year boundary",
			a:    at(2023, time.December, 31, 12, 0),
			b:    at(2024, time.January, 1, 12, 0),
			same: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := cal.KeyFor(Daily, tt.a), cal.KeyFor(Daily, tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("KeyFor(%v) == KeyFor(%v) is %v, want %v", tt.a, tt.b, ka == kb, tt.same)
			}
		})
	}
}

func TestWeeklyKeys(t *testing.T) {
	cal := utcCalendar()

	tests := []struct {
		name string
		a, b time.Time
		same bool
	}{
		{
			name: "monday through sunday",
			a:    at(2024, time.January, 15, 0, 0),
			b:    time.Date(2024, time.January, 21, 23, 59, 59, 0, time.UTC),
			same: true,
		},
		{
			name: "sunday night vs monday morning",
			a:    at(2024, time.January, 21, 23, 59),
			b:    at(2024, time.January, 22, 0, 1),
			same: false,
		},
		{
			name: "ISO week spanning new year",
			a:    at(2020, time.December, 31, 9, 0),
			b:    at(2021, time.January, 3, 21, 0),
			same: true,
		},
		{
			name: "ISO week 1 starting in previous year",
			a:    at(2024, time.December, 30, 8, 0),
			b:    at(2025, time.January, 5, 8, 0),
			same: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := cal.KeyFor(Weekly, tt.a), cal.KeyFor(Weekly, tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("KeyFor(%v) == KeyFor(%v) is %v, want %v", tt.a, tt.b, ka == kb, tt.same)
			}
		})
	}
}

func TestKeyStrings(t *testing.T) {
	cal := utcCalendar()

	tests := []struct {
		name string
		p    Periodicity
		t    time.Time
		want string
	}{
		{name: "daily", p: Daily, t: at(2024, time.January, 15, 10, 0), want: "2024-01-15"},
		{name: "weekly mid year", p: Weekly, t: at(2024, time.January, 17, 10, 0), want: "2024-W03"},
		{name: "weekly week 53", p: Weekly, t: at(2021, time.January, 2, 10, 0), want: "2020-W53"},
		{name: "weekly before epoch", p: Weekly, t: at(1969, time.December, 30, 10, 0), want: "1970-W01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cal.KeyFor(tt.p, tt.t).String(); got != tt.want {
				t.Errorf("KeyFor(%v, %v).String() = %q, want %q", tt.p, tt.t, got, tt.want)
			}
		})
	}
}

func TestWeeklyStartIsMonday(t *testing.T) {
	cal := utcCalendar()
	day := at(2019, time.January, 1, 12, 0)
	for i := 0; i < 3*366; i++ {
		current := day.AddDate(0, 0, i)
		start := cal.KeyFor(Weekly, current).Start()
		if start.Weekday() != time.Monday {
			t.Fatalf("week containing %v starts on %v", current, start.Weekday())
		}
		if current.Before(start) || !current.Before(start.AddDate(0, 0, 7)) {
			t.Fatalf("week starting %v does not contain %v", start, current)
		}
	}
}

func TestNextPreviousRoundTrip(t *testing.T) {
	cal := utcCalendar()
	day := at(2018, time.December, 20, 12, 0)

	for _, p := range All() {
		for i := 0; i < 5*366; i++ {
			k := cal.KeyFor(p, day.AddDate(0, 0, i))
			if k.Next().Previous() != k || k.Previous().Next() != k {
				t.Fatalf("%v round trip failed for %v", p, k)
			}
			if !k.Before(k.Next()) || k.Next().Since(k) != 1 {
				t.Fatalf("%v next of %v is not the following period", p, k)
			}
		}
	}
}

func TestNextMatchesCalendar(t *testing.T) {
	cal := utcCalendar()
	day := at(2020, time.December, 25, 12, 0)

	for i := 0; i < 30; i++ {
		current := day.AddDate(0, 0, i)
		if cal.KeyFor(Daily, current).Next() != cal.KeyFor(Daily, current.AddDate(0, 0, 1)) {
			t.Fatalf("daily Next disagrees with calendar at %v", current)
		}
		if cal.KeyFor(Weekly, current).Next() != cal.KeyFor(Weekly, current.AddDate(0, 0, 7)) {
			t.Fatalf("weekly Next disagrees with calendar at %v", current)
		}
	}
}

func TestCalendarUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	cal := NewCalendar(loc)

	// 2024-03-10 is the spring-forward day in New York
	early := time.Date(2024, time.March, 10, 0, 30, 0, 0, loc)
	late := time.Date(2024, time.March, 10, 23, 30, 0, 0, loc)
	if cal.KeyFor(Daily, early) != cal.KeyFor(Daily, late) {
		t.Error("times on the same local day produced different keys")
	}

	// 02:00 UTC on the 11th is still the evening of the 10th locally
	utc := time.Date(2024, time.March, 11, 2, 0, 0, 0, time.UTC)
	if cal.KeyFor(Daily, utc) != cal.KeyFor(Daily, late) {
		t.Error("UTC timestamp was not converted into the calendar location")
	}
	// early is 05:30Z on the 10th, so only the New York calendar groups it with utc
	if utcCalendar().KeyFor(Daily, utc) == utcCalendar().KeyFor(Daily, early) {
		t.Error("UTC calendar should place the two timestamps on different days")
	}
	if cal.KeyFor(Daily, utc) != cal.KeyFor(Daily, early) {
		t.Error("New York calendar should place the two timestamps on the same day")
	}
}

func TestContains(t *testing.T) {
	cal := utcCalendar()
	k := cal.KeyFor(Weekly, at(2024, time.January, 17, 0, 0))
	if !cal.Contains(k, at(2024, time.January, 21, 23, 0)) {
		t.Error("expected Sunday to be in the same week")
	}
	if cal.Contains(k, at(2024, time.January, 22, 0, 0)) {
		t.Error("expected the following Monday to be outside the week")
	}
}
