// Package edtf parses a subset of the Extended Date/Time Format and
// translates parsed values into Solr date range expressions.
//
// The supported subset covers single calendar points (with optional time
// and UTC offset), partial dates, unspecified digits ("X"), seasons and
// other calendar subdivisions (codes 21-41), intervals with open or
// unknown endpoints, exponential years, and the uncertainty (?),
// approximation (~), and combined (%) qualifiers.
package edtf

import (
	"fmt"
	"strings"
)

// Qualifier marks a value as uncertain, approximate, or both.
type Qualifier int

const (
	// QualNone means the value carries no qualifier.
	QualNone Qualifier = iota
	// QualUncertain corresponds to the "?" marker.
	QualUncertain
	// QualApproximate corresponds to the "~" marker.
	QualApproximate
	// QualUncertainApproximate corresponds to the "%" marker.
	QualUncertainApproximate
)

// Value is a parsed EDTF value.
type Value interface {
	fmt.Stringer
	isValue()
}

// Date is a single calendar point. Month and Day are zero when absent.
type Date struct {
	Year      int
	Month     int
	Day       int
	Qualifier Qualifier
}

func (d Date) isValue() {}

// formatYear zero-pads the year magnitude to four digits. The sign
// stays outside the padding so year -999 renders as "-0999".
func formatYear(year int) string {
	if year < 0 {
		return fmt.Sprintf("-%04d", -year)
	}
	return fmt.Sprintf("%04d", year)
}

func (d Date) String() string {
	s := formatYear(d.Year)
	if d.Month > 0 {
		s += fmt.Sprintf("-%02d", d.Month)
		if d.Day > 0 {
			s += fmt.Sprintf("-%02d", d.Day)
		}
	}
	return s
}

// DateTime is a fully-qualified date with a time component and an
// optional UTC offset ("Z", "+05:00", "-07:00"). An empty Offset means
// the time had no zone designator.
type DateTime struct {
	Year      int
	Month     int
	Day       int
	Hour      int
	Minute    int
	Second    int
	Offset    string
	Qualifier Qualifier
}

func (dt DateTime) isValue() {}

func (dt DateTime) String() string {
	return fmt.Sprintf("%s-%02d-%02dT%02d:%02d:%02d%s",
		formatYear(dt.Year), dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Offset)
}

// Unspecified is a date with one or more digits replaced by "X".
// Year, Month, and Day hold the raw digit groups; Month and Day are
// empty when absent.
type Unspecified struct {
	Year      string
	Month     string
	Day       string
	Qualifier Qualifier
}

func (u Unspecified) isValue() {}

func (u Unspecified) String() string {
	parts := []string{u.Year}
	if u.Month != "" {
		parts = append(parts, u.Month)
		if u.Day != "" {
			parts = append(parts, u.Day)
		}
	}
	return strings.Join(parts, "-")
}

// Season is a year plus a calendar-subdivision code in the range 21-41:
// seasons (21-24 and the hemisphere-qualified 25-32), quarters (33-36),
// quadrimesters (37-39), and semesters (40-41).
type Season struct {
	Year      int
	Code      int
	Qualifier Qualifier
}

func (s Season) isValue() {}

func (s Season) String() string {
	return fmt.Sprintf("%s-%02d", formatYear(s.Year), s.Code)
}

// ExponentialYear is a year written as mantissa x 10^exponent ("Y5E2").
type ExponentialYear struct {
	Mantissa int
	Exponent int
}

func (e ExponentialYear) isValue() {}

func (e ExponentialYear) String() string {
	return fmt.Sprintf("Y%dE%d", e.Mantissa, e.Exponent)
}

// Year returns the decoded integer year.
func (e ExponentialYear) Year() int {
	y := e.Mantissa
	for i := 0; i < e.Exponent; i++ {
		y *= 10
	}
	return y
}

// LongYear is a year with more than four digits ("Y170002").
type LongYear struct {
	Digits string
}

func (l LongYear) isValue() {}

func (l LongYear) String() string {
	return "Y" + l.Digits
}

// EndpointKind distinguishes concrete interval endpoints from the open
// ("..") and unknown (empty) boundary markers.
type EndpointKind int

const (
	// EndpointValue is a concrete endpoint with a Value.
	EndpointValue EndpointKind = iota
	// EndpointOpen is the ".." open boundary marker.
	EndpointOpen
	// EndpointUnknown is an omitted (unknown) boundary.
	EndpointUnknown
)

// Endpoint is one side of an interval.
type Endpoint struct {
	Kind  EndpointKind
	Value Value
}

func (e Endpoint) String() string {
	switch e.Kind {
	case EndpointOpen:
		return ".."
	case EndpointUnknown:
		return ""
	default:
		return e.Value.String()
	}
}

// Interval is a pair of endpoints separated by "/".
type Interval struct {
	Lower Endpoint
	Upper Endpoint
}

func (i Interval) isValue() {}

func (i Interval) String() string {
	return i.Lower.String() + "/" + i.Upper.String()
}

// OneOfASet is the "[...]" choice notation. It parses but is not
// translatable to a Solr range.
type OneOfASet struct {
	Raw string
}

func (s OneOfASet) isValue() {}

func (s OneOfASet) String() string { return s.Raw }

// MultipleDates is the "{...}" list notation. It parses but is not
// translatable to a Solr range.
type MultipleDates struct {
	Raw string
}

func (m MultipleDates) isValue() {}

func (m MultipleDates) String() string { return m.Raw }

// IsUncertain reports whether the value (or, for intervals, either
// endpoint) carries the "?" or "%" marker.
func IsUncertain(v Value) bool {
	switch t := v.(type) {
	case Date:
		return t.Qualifier == QualUncertain || t.Qualifier == QualUncertainApproximate
	case DateTime:
		return t.Qualifier == QualUncertain || t.Qualifier == QualUncertainApproximate
	case Season:
		return t.Qualifier == QualUncertain || t.Qualifier == QualUncertainApproximate
	case Unspecified:
		return t.Qualifier == QualUncertain || t.Qualifier == QualUncertainApproximate
	case Interval:
		return endpointIs(t.Lower, IsUncertain) || endpointIs(t.Upper, IsUncertain)
	}
	return false
}

// IsApproximate reports whether the value (or, for intervals, either
// endpoint) carries the "~" or "%" marker.
func IsApproximate(v Value) bool {
	switch t := v.(type) {
	case Date:
		return t.Qualifier == QualApproximate || t.Qualifier == QualUncertainApproximate
	case DateTime:
		return t.Qualifier == QualApproximate || t.Qualifier == QualUncertainApproximate
	case Season:
		return t.Qualifier == QualApproximate || t.Qualifier == QualUncertainApproximate
	case Unspecified:
		return t.Qualifier == QualApproximate || t.Qualifier == QualUncertainApproximate
	case Interval:
		return endpointIs(t.Lower, IsApproximate) || endpointIs(t.Upper, IsApproximate)
	}
	return false
}

// IsUncertainApproximate reports whether the value (or, for intervals,
// either endpoint) carries the combined "%" marker.
func IsUncertainApproximate(v Value) bool {
	switch t := v.(type) {
	case Date:
		return t.Qualifier == QualUncertainApproximate
	case DateTime:
		return t.Qualifier == QualUncertainApproximate
	case Season:
		return t.Qualifier == QualUncertainApproximate
	case Unspecified:
		return t.Qualifier == QualUncertainApproximate
	case Interval:
		return endpointIs(t.Lower, IsUncertainApproximate) || endpointIs(t.Upper, IsUncertainApproximate)
	}
	return false
}

func endpointIs(e Endpoint, pred func(Value) bool) bool {
	return e.Kind == EndpointValue && pred(e.Value)
}
