package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RollingMonths is the length of the default budget listing window.
const RollingMonths = 12

var (
	yearMonthPattern = regexp.MustCompile(`^(\d{2})\.(\d{4})$`)
	yearPattern      = regexp.MustCompile(`^\d{4}$`)
)

// YearMonth is a calendar month without a day or time zone.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the calendar month of t in t's location.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses "MM.YYYY" with a two-digit month 01-12 and a four-digit year.
func ParseYearMonth(value string) (YearMonth, error) {
	match := yearMonthPattern.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return YearMonth{}, fmt.Errorf("parse %q: %w", value, ErrInvalidDate)
	}
	month, _ := strconv.Atoi(match[1])
	year, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 || year < 1 {
		return YearMonth{}, fmt.Errorf("parse %q: %w", value, ErrInvalidDate)
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

func (ym YearMonth) index() int {
	return ym.Year*12 + int(ym.Month) - 1
}

func yearMonthFromIndex(idx int) YearMonth {
	return YearMonth{Year: idx / 12, Month: time.Month(idx%12 + 1)}
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.index() < other.index()
}

// After reports whether ym is strictly later than other.
func (ym YearMonth) After(other YearMonth) bool {
	return ym.index() > other.index()
}

// AddMonths shifts the month by n, which may be negative.
func (ym YearMonth) AddMonths(n int) YearMonth {
	return yearMonthFromIndex(ym.index() + n)
}

// MonthsUntil counts months from ym to other inclusive. It is zero when other is before ym.
func (ym YearMonth) MonthsUntil(other YearMonth) int {
	if other.Before(ym) {
		return 0
	}
	return other.index() - ym.index() + 1
}

// Bounds returns the half-open interval [first day, first day of next month) in loc.
func (ym YearMonth) Bounds(loc *time.Location) (time.Time, time.Time) {
	start := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%02d.%04d", int(ym.Month), ym.Year)
}

// PeriodKind tells how a period was requested. It drives the report footer.
type PeriodKind int

const (
	PeriodRolling PeriodKind = iota
	PeriodYear
	PeriodRange
)

// Period is an ascending, gap-free sequence of calendar months.
type Period struct {
	Kind   PeriodKind
	Months []YearMonth
}

// From returns the first month of the period.
func (p Period) From() YearMonth {
	return p.Months[0]
}

// To returns the last month of the period.
func (p Period) To() YearMonth {
	return p.Months[len(p.Months)-1]
}

// Tag describes the period: "rolling-12", "year:YYYY" or "range:N".
func (p Period) Tag() string {
	switch p.Kind {
	case PeriodRolling:
		return fmt.Sprintf("rolling-%d", RollingMonths)
	case PeriodYear:
		return fmt.Sprintf("year:%04d", p.From().Year)
	default:
		return fmt.Sprintf("range:%d", len(p.Months))
	}
}

// MonthRange returns every month from start to end inclusive.
func MonthRange(start, end YearMonth) []YearMonth {
	count := start.MonthsUntil(end)
	months := make([]YearMonth, 0, count)
	for i := 0; i < count; i++ {
		months = append(months, start.AddMonths(i))
	}
	return months
}

// ResolvePeriod turns command arguments into a period:
// no arguments is the current month with the 11 before it, "YYYY" is a whole year
// and "MM.YYYY MM.YYYY" is an inclusive range.
func ResolvePeriod(args []string, now time.Time) (Period, error) {
	switch len(args) {
	case 0:
		current := YearMonthOf(now)
		return Period{
			Kind:   PeriodRolling,
			Months: MonthRange(current.AddMonths(-(RollingMonths - 1)), current),
		}, nil
	case 1:
		raw := strings.TrimSpace(args[0])
		if !yearPattern.MatchString(raw) {
			return Period{}, fmt.Errorf("parse year %q: %w", raw, ErrInvalidDate)
		}
		year, _ := strconv.Atoi(raw)
		if year < 1 {
			return Period{}, fmt.Errorf("parse year %q: %w", raw, ErrInvalidDate)
		}
		return Period{
			Kind:   PeriodYear,
			Months: MonthRange(YearMonth{Year: year, Month: time.January}, YearMonth{Year: year, Month: time.December}),
		}, nil
	case 2:
		start, err := ParseYearMonth(args[0])
		if err != nil {
			return Period{}, err
		}
		end, err := ParseYearMonth(args[1])
		if err != nil {
			return Period{}, err
		}
		if start.After(end) {
			return Period{}, fmt.Errorf("%s after %s: %w", start, end, ErrRangeInverted)
		}
		return Period{Kind: PeriodRange, Months: MonthRange(start, end)}, nil
	default:
		return Period{}, fmt.Errorf("period takes 0, 1 or 2 arguments, got %d: %w", len(args), ErrMalformedCommand)
	}
}
