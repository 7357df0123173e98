package edtf

import (
	"fmt"
	"strconv"
	"strings"
)

// ymd is a concrete calendar date used for strict range bounds.
type ymd struct {
	year  int
	month int
	day   int
}

func (d ymd) String() string {
	return fmt.Sprintf("%s-%02d-%02d", formatYear(d.year), d.month, d.day)
}

// IsLeapYear reports whether the given proleptic Gregorian year is a
// leap year.
func IsLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

var monthDays = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month of the
// given year.
func DaysInMonth(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	if month < 1 || month > 12 {
		return 0
	}
	return monthDays[month]
}

// monthSpan is an inclusive block of months within a single year.
type monthSpan struct {
	first int
	last  int
}

// subdivisionSpans maps EDTF calendar-subdivision codes to month blocks.
// Northern winter is pinned to the final quarter of the same calendar
// year rather than wrapping into the next one. The Southern-hemisphere
// codes (29-32) reuse the Northern month blocks shifted by two seasons.
var subdivisionSpans = map[int]monthSpan{
	// seasons, hemisphere-independent
	21: {3, 5},
	22: {6, 8},
	23: {9, 11},
	24: {12, 12},
	// seasons, Northern hemisphere
	25: {3, 5},
	26: {6, 8},
	27: {9, 11},
	28: {12, 12},
	// seasons, Southern hemisphere
	29: {9, 11},
	30: {12, 12},
	31: {3, 5},
	32: {6, 8},
	// quarters
	33: {1, 3},
	34: {4, 6},
	35: {7, 9},
	36: {10, 12},
	// quadrimesters
	37: {1, 4},
	38: {5, 8},
	39: {9, 12},
	// semesters
	40: {1, 6},
	41: {7, 12},
}

// subdivisionCode validates a month-position value as a subdivision
// code and returns it if recognized.
func subdivisionCode(n int) (int, bool) {
	if _, ok := subdivisionSpans[n]; ok {
		return n, true
	}
	return 0, false
}

// SubdivisionMonths returns the inclusive first and last months of the
// given subdivision code.
func SubdivisionMonths(code int) (first, last int, ok bool) {
	span, ok := subdivisionSpans[code]
	if !ok {
		return 0, 0, false
	}
	return span.first, span.last, true
}

// lowerStrict returns the earliest concrete date consistent with d.
func (d Date) lowerStrict() ymd {
	month := d.Month
	if month == 0 {
		month = 1
	}
	day := d.Day
	if day == 0 {
		day = 1
	}
	return ymd{d.Year, month, day}
}

// upperStrict returns the latest concrete date consistent with d.
func (d Date) upperStrict() ymd {
	month := d.Month
	if month == 0 {
		month = 12
	}
	day := d.Day
	if day == 0 {
		day = DaysInMonth(d.Year, month)
	}
	return ymd{d.Year, month, day}
}

func (s Season) lowerStrict() ymd {
	span := subdivisionSpans[s.Code]
	return ymd{s.Year, span.first, 1}
}

func (s Season) upperStrict() ymd {
	span := subdivisionSpans[s.Code]
	return ymd{s.Year, span.last, DaysInMonth(s.Year, span.last)}
}

// expandDigits replaces every "X" in a digit group with the fill digit
// and decodes the result.
func expandDigits(digits string, fill byte) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(digits, "X", string(fill)))
	return n
}

func (u Unspecified) lowerStrict() ymd {
	year := expandDigits(u.Year, '0')
	month := 1
	if u.Month != "" {
		month = clamp(expandDigits(u.Month, '0'), 1, 12)
	}
	day := 1
	if u.Day != "" {
		day = clamp(expandDigits(u.Day, '0'), 1, DaysInMonth(year, month))
	}
	return ymd{year, month, day}
}

func (u Unspecified) upperStrict() ymd {
	year := expandDigits(u.Year, '9')
	month := 12
	if u.Month != "" {
		month = clamp(expandDigits(u.Month, '9'), 1, 12)
	}
	day := DaysInMonth(year, month)
	if u.Day != "" {
		day = clamp(expandDigits(u.Day, '9'), 1, DaysInMonth(year, month))
	}
	return ymd{year, month, day}
}

func (e ExponentialYear) lowerStrict() ymd {
	return ymd{e.Year(), 1, 1}
}

func (e ExponentialYear) upperStrict() ymd {
	return ymd{e.Year(), 12, 31}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
