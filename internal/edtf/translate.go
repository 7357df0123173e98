package edtf

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// UnsupportedError indicates a valid EDTF value that cannot be
// represented as a Solr date or date range. It is a distinct outcome
// from a ParseError: callers should omit the field, not fail.
type UnsupportedError struct {
	Value  string
	Reason string
}

func (e *UnsupportedError) Error() string {
	return "cannot convert " + strconv.Quote(e.Value) + " to a Solr date: " + e.Reason
}

// IsUnsupported reports whether err marks a parseable-but-untranslatable
// EDTF value.
func IsUnsupported(err error) bool {
	var u *UnsupportedError
	return errors.As(err, &u)
}

const reasonYearRange = "Solr does not support years outside the range -9999 to 9999"

// SolrDate converts a parsed EDTF value into a date or date range
// string valid for Solr:
//
//   - plain dates pass through at their written precision
//   - date-times are normalized to UTC with a "Z" suffix
//   - unspecified digits, subdivisions, and exponential years expand to
//     a strict "[lower TO upper]" range
//   - interval endpoints are translated independently, with open or
//     unknown boundaries rendered as "*"
//
// Long years, exponential years with an exponent above 3, one-of-a-set,
// and multiple-date notations return an UnsupportedError.
func SolrDate(v Value) (string, error) {
	switch t := v.(type) {
	case Date:
		return Date{Year: t.Year, Month: t.Month, Day: t.Day}.String(), nil
	case DateTime:
		return solrDateTime(t)
	case Unspecified:
		return strictRange(t.lowerStrict(), t.upperStrict()), nil
	case Season:
		return strictRange(t.lowerStrict(), t.upperStrict()), nil
	case ExponentialYear:
		if abs(t.Exponent) > 3 || abs(t.Year()) > 9999 {
			return "", &UnsupportedError{Value: t.String(), Reason: reasonYearRange}
		}
		return strictRange(t.lowerStrict(), t.upperStrict()), nil
	case LongYear:
		return "", &UnsupportedError{Value: t.String(), Reason: reasonYearRange}
	case Interval:
		lower, err := endpointSolrDate(t.Lower)
		if err != nil {
			return "", err
		}
		upper, err := endpointSolrDate(t.Upper)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%s TO %s]", lower, upper), nil
	case OneOfASet:
		return "", &UnsupportedError{Value: t.String(), Reason: "one-of-a-set notation is not translatable"}
	case MultipleDates:
		return "", &UnsupportedError{Value: t.String(), Reason: "multiple-date notation is not translatable"}
	}
	return "", &UnsupportedError{Value: v.String(), Reason: "unknown value type"}
}

// Translate parses the string and converts it to a Solr date in one
// step.
func Translate(s string) (string, error) {
	v, err := Parse(s)
	if err != nil {
		return "", err
	}
	return SolrDate(v)
}

func endpointSolrDate(e Endpoint) (string, error) {
	if e.Kind != EndpointValue {
		return "*", nil
	}
	return SolrDate(e.Value)
}

func strictRange(lower, upper ymd) string {
	return fmt.Sprintf("[%s TO %s]", lower, upper)
}

// solrDateTime renders the date-time in UTC with the "Z" zone marker
// Solr expects. A missing offset is treated as UTC so that translation
// does not depend on the host timezone.
func solrDateTime(dt DateTime) (string, error) {
	loc := time.UTC
	if dt.Offset != "" && dt.Offset != "Z" {
		sign := 1
		if dt.Offset[0] == '-' {
			sign = -1
		}
		hours, _ := strconv.Atoi(dt.Offset[1:3])
		minutes, _ := strconv.Atoi(dt.Offset[4:6])
		loc = time.FixedZone(dt.Offset, sign*(hours*3600+minutes*60))
	}
	t := time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, 0, loc)
	return t.UTC().Format("2006-01-02T15:04:05") + "Z", nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
