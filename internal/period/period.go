// Package period maps points in time onto the discrete buckets (days or ISO
// weeks) that habit completions are judged against.
package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
)

// Periodicity is how often a habit is expected to be completed.
type Periodicity int

const (
	Daily Periodicity = iota + 1
	Weekly
)

const secondsPerDay = 24 * 60 * 60

// All returns every supported periodicity in display order.
func All() []Periodicity {
	return []Periodicity{Daily, Weekly}
}

// Parse converts a user or database supplied name into a Periodicity.
func Parse(s string) (Periodicity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	default:
		return 0, fmt.Errorf("%w: got %q", apperrors.ErrInvalidPeriodicity, s)
	}
}

// Valid reports whether p is one of the supported periodicities.
func (p Periodicity) Valid() bool {
	return p == Daily || p == Weekly
}

func (p Periodicity) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	default:
		return fmt.Sprintf("periodicity(%d)", int(p))
	}
}

// Unit is the noun used when reporting streak lengths ("days", "weeks").
func (p Periodicity) Unit() string {
	if p == Weekly {
		return "weeks"
	}
	return "days"
}

func (p Periodicity) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidPeriodicity, int(p))
	}
	return []byte(p.String()), nil
}

func (p *Periodicity) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Key identifies one period instance. Keys of the same periodicity are totally
// ordered and comparable with ==.
type Key struct {
	periodicity Periodicity
	// days since 1970-01-01 for Daily, weeks since Monday 1969-12-29 for Weekly
	ordinal int64
}

func (k Key) Periodicity() Periodicity {
	return k.periodicity
}

func (k Key) Next() Key {
	return Key{periodicity: k.periodicity, ordinal: k.ordinal + 1}
}

func (k Key) Previous() Key {
	return Key{periodicity: k.periodicity, ordinal: k.ordinal - 1}
}

// Before reports whether k is an earlier period than other.
func (k Key) Before(other Key) bool {
	return k.ordinal < other.ordinal
}

// Since returns the number of periods from earlier to k; negative if earlier
// is actually later.
func (k Key) Since(earlier Key) int64 {
	return k.ordinal - earlier.ordinal
}

// Start returns the first civil day of the period as midnight UTC.
func (k Key) Start() time.Time {
	day := k.ordinal
	if k.periodicity == Weekly {
		day = k.ordinal*7 - 3
	}
	return time.Unix(day*secondsPerDay, 0).UTC()
}

// String renders daily keys as 2006-01-02 and weekly keys as ISO 2006-W01.
func (k Key) String() string {
	start := k.Start()
	if k.periodicity == Weekly {
		year, week := start.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	}
	return start.Format(constants.DateFormat)
}

// Calendar assigns timestamps to period keys using a single location, so
// that every key in a process agrees on where a day begins.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a Calendar for loc; nil means time.Local.
func NewCalendar(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// KeyFor returns the key of the period of the given periodicity containing t.
func (c Calendar) KeyFor(p Periodicity, t time.Time) Key {
	year, month, day := t.In(c.Location()).Date()
	days := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay

	switch p {
	case Daily:
		return Key{periodicity: Daily, ordinal: days}
	case Weekly:
		// 1970-01-01 was a Thursday, three days after the Monday opening its ISO week
		return Key{periodicity: Weekly, ordinal: floorDiv(days+3, 7)}
	default:
		panic(fmt.Sprintf("period: KeyFor called with %v", p))
	}
}

// Contains reports whether t falls inside the period identified by k.
func (c Calendar) Contains(k Key, t time.Time) bool {
	return c.KeyFor(k.periodicity, t) == k
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
