package acme

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampPattern matches RFC 3339 timestamps with 0-9 fractional digits,
// case-insensitive "T"/"Z", and both "+HH:MM" and "+HHMM" offset forms.
var timestampPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})[Tt](\d{2}):(\d{2}):(\d{2})(\.\d{1,9})?([Zz]|[+-]\d{2}:?\d{2})$`)

// ParseTimestamp parses an RFC 3339 timestamp into a UTC instant truncated
// to millisecond precision (rounding toward zero). It rejects bare dates,
// empty strings, and whitespace-only input.
func ParseTimestamp(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, fmt.Errorf("acme: empty timestamp")
	}

	m := timestampPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("acme: %q is not a valid RFC 3339 timestamp", s)
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	var nanos int
	if frac := m[7]; frac != "" {
		digits := frac[1:]
		// Right-pad to 9 digits (nanosecond precision) so "006" means
		// "006000000" ns, then we truncate to millisecond precision below.
		padded := digits + strings.Repeat("0", 9-len(digits))
		nanos, _ = strconv.Atoi(padded)
	}

	offset := m[8]
	var loc *time.Location
	if offset == "Z" || offset == "z" {
		loc = time.UTC
	} else {
		sign := 1
		if offset[0] == '-' {
			sign = -1
		}
		digits := strings.ReplaceAll(offset[1:], ":", "")
		offHour, _ := strconv.Atoi(digits[0:2])
		offMin, _ := strconv.Atoi(digits[2:4])
		loc = time.FixedZone("", sign*(offHour*3600+offMin*60))
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, nanos, loc).UTC()

	// Truncate (not round) to millisecond precision.
	return t.Truncate(time.Millisecond), nil
}
