package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay bounds a block's coordinate system; end minutes past this
// value would cross midnight.
const MinutesPerDay = 24 * 60

// ToMinutes parses a station wall-clock time of day ("HH:MM" or "HH:MM:SS")
// into minutes since midnight. Seconds are validated but truncated.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
	}
	if len(parts) == 3 {
		seconds, err := strconv.Atoi(parts[2])
		if err != nil || seconds < 0 || seconds > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, clock)
		}
	}
	return hours*60 + minutes, nil
}

// FormatMinutes renders minutes since midnight as "HH:MM:00".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d:00", m/60, m%60)
}

// ISOWeekday maps a time to the station weekday numbering: 0 = Monday
// through 6 = Sunday. This numbering is used everywhere weekday math
// occurs; time.Weekday's Sunday-first convention never leaks out.
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// AnchorWeekly returns the absolute instant of the first occurrence of the
// given weekday/time on or after the start of anchor's calendar day in loc.
// The occurrence on anchor's own day is returned even if the time of day
// already passed; callers clip against their window.
func AnchorWeekly(dayOfWeek, startMinutes int, anchor time.Time, loc *time.Location) time.Time {
	a := anchor.In(loc)
	delta := (dayOfWeek - ISOWeekday(a) + 7) % 7
	d := a.AddDate(0, 0, delta)
	return time.Date(d.Year(), d.Month(), d.Day(), startMinutes/60, startMinutes%60, 0, 0, loc)
}

// LoadZone resolves an IANA zone name, defaulting to UTC when empty.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// DisplayInZone renders an absolute instant as wall-clock text in the target
// zone. Presentation only; never used for comparisons.
func DisplayInZone(instant time.Time, tz string) (string, error) {
	loc, err := LoadZone(tz)
	if err != nil {
		return "", err
	}
	return instant.In(loc).Format("2006-01-02 15:04:05 MST"), nil
}
