package valueobject

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// rocYearOffset converts a Republic-of-China calendar year to Gregorian.
// Report sources in Taiwan submit either calendar; any parsed year below
// the offset is treated as an ROC year.
const rocYearOffset = 1911

// EmptyDateSentinel is the display value used when a period contains no
// dated records.
const EmptyDateSentinel = "無資料"

// ReportDate is a value object representing a calendar day in a daily
// report. It is always Gregorian internally regardless of the calendar the
// source used. It is immutable and compares numerically on the
// (year, month, day) triple, never on raw strings.
type ReportDate struct {
	year  int
	month int
	day   int
}

// NewReportDate creates a ReportDate from explicit components.
// ROC years are converted to Gregorian.
func NewReportDate(year, month, day int) (ReportDate, error) {
	if year <= 0 {
		return ReportDate{}, errors.New("year must be positive")
	}
	if year < rocYearOffset {
		year += rocYearOffset
	}
	if month < 1 || month > 12 {
		return ReportDate{}, fmt.Errorf("month out of range: %d", month)
	}
	if day < 1 || day > daysIn(year, month) {
		return ReportDate{}, fmt.Errorf("day out of range: %d", day)
	}
	return ReportDate{year: year, month: month, day: day}, nil
}

// NewReportDateFromTime creates a ReportDate from a time.Time value.
func NewReportDateFromTime(t time.Time) ReportDate {
	return ReportDate{year: t.Year(), month: int(t.Month()), day: t.Day()}
}

// ParseReportDate parses a heterogeneous date value into a canonical
// ReportDate. Accepted shapes:
//   - ISO strings "YYYY-MM-DD"
//   - slash strings "YYYY/MM/DD", possibly with an ROC year
//   - time.Time and *time.Time values
//
// Anything else is an error; callers that tolerate dirty data skip the
// record and count it instead of guessing.
func ParseReportDate(value any) (ReportDate, error) {
	switch v := value.(type) {
	case time.Time:
		return NewReportDateFromTime(v), nil
	case *time.Time:
		if v == nil {
			return ReportDate{}, errors.New("nil time value")
		}
		return NewReportDateFromTime(*v), nil
	case string:
		return parseReportDateString(v)
	case fmt.Stringer:
		return parseReportDateString(v.String())
	default:
		return ReportDate{}, fmt.Errorf("unsupported date value of type %T", value)
	}
}

// ParseReportDateString parses a date string in either accepted format.
func ParseReportDateString(s string) (ReportDate, error) {
	return parseReportDateString(s)
}

func parseReportDateString(s string) (ReportDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ReportDate{}, errors.New("empty date string")
	}

	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return ReportDate{}, fmt.Errorf("malformed date string: %q", s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return ReportDate{}, fmt.Errorf("malformed date string: %q", s)
		}
		nums[i] = n
	}

	return NewReportDate(nums[0], nums[1], nums[2])
}

// Year returns the Gregorian year.
func (d ReportDate) Year() int { return d.year }

// Month returns the month (1-12).
func (d ReportDate) Month() int { return d.month }

// Day returns the day of month.
func (d ReportDate) Day() int { return d.day }

// IsZero reports whether the date is the zero value.
func (d ReportDate) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Display returns the canonical display form "YYYY/MM/DD".
func (d ReportDate) Display() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.year, d.month, d.day)
}

// Storage returns the canonical storage form "YYYY-MM-DD", suitable for
// range queries.
func (d ReportDate) Storage() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Time returns the date as a time.Time at midnight UTC.
func (d ReportDate) Time() time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC)
}

// Compare returns -1, 0, or 1 comparing d to other numerically.
func (d ReportDate) Compare(other ReportDate) int {
	if c := compareInt(d.year, other.year); c != 0 {
		return c
	}
	if c := compareInt(d.month, other.month); c != 0 {
		return c
	}
	return compareInt(d.day, other.day)
}

// Before reports whether d falls before other.
func (d ReportDate) Before(other ReportDate) bool {
	return d.Compare(other) < 0
}

// After reports whether d falls after other.
func (d ReportDate) After(other ReportDate) bool {
	return d.Compare(other) > 0
}

// Equal reports whether d and other are the same calendar day.
func (d ReportDate) Equal(other ReportDate) bool {
	return d.Compare(other) == 0
}

// InPeriod reports whether the date falls in the given Gregorian
// year and month.
func (d ReportDate) InPeriod(year, month int) bool {
	return d.year == year && d.month == month
}

// InYear reports whether the date falls in the given Gregorian year.
func (d ReportDate) InYear(year int) bool {
	return d.year == year
}

// DaysInMonth returns the number of calendar days in the given period.
func DaysInMonth(year, month int) int {
	return daysIn(year, month)
}

func daysIn(year, month int) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
