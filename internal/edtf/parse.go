package edtf

import (
	"regexp"
	"strconv"
	"strings"
)

// ParseError indicates the input could not be parsed as an EDTF value.
// This is distinct from a value that parses but cannot be translated to
// a Solr range (see UnsupportedError).
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return "cannot parse " + strconv.Quote(e.Input) + " as an EDTF value: " + e.Reason
}

var (
	dateRe        = regexp.MustCompile(`^(-?\d{4})(?:-(\d{2})(?:-(\d{2}))?)?$`)
	dateTimeRe    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})T(\d{2}):(\d{2}):(\d{2})(Z|[+-]\d{2}:\d{2})?$`)
	unspecifiedRe = regexp.MustCompile(`^([0-9X]{4})(?:-([0-9X]{2})(?:-([0-9X]{2}))?)?$`)
	expYearRe     = regexp.MustCompile(`^Y(-?\d+)E(\d+)$`)
	longYearRe    = regexp.MustCompile(`^Y(-?\d{5,})$`)
)

// Parse parses the given string as an EDTF value.
func Parse(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &ParseError{Input: s, Reason: "empty string"}
	}

	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return OneOfASet{Raw: s}, nil
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return MultipleDates{Raw: s}, nil
	}

	if strings.Contains(s, "/") {
		return parseInterval(s)
	}

	return parseSingle(s)
}

func parseInterval(s string) (Value, error) {
	parts := strings.SplitN(s, "/", 2)
	lower, err := parseEndpoint(parts[0])
	if err != nil {
		return nil, &ParseError{Input: s, Reason: "bad interval start: " + err.Error()}
	}
	upper, err := parseEndpoint(parts[1])
	if err != nil {
		return nil, &ParseError{Input: s, Reason: "bad interval end: " + err.Error()}
	}
	if lower.Kind != EndpointValue && upper.Kind != EndpointValue {
		return nil, &ParseError{Input: s, Reason: "interval has no concrete endpoint"}
	}
	return Interval{Lower: lower, Upper: upper}, nil
}

func parseEndpoint(s string) (Endpoint, error) {
	switch s {
	case "":
		return Endpoint{Kind: EndpointUnknown}, nil
	case "..":
		return Endpoint{Kind: EndpointOpen}, nil
	}
	v, err := parseSingle(s)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{Kind: EndpointValue, Value: v}, nil
}

// parseSingle parses one non-interval value, stripping any trailing
// qualifier marker first.
func parseSingle(s string) (Value, error) {
	qual := QualNone
	if len(s) > 0 {
		switch s[len(s)-1] {
		case '?':
			qual = QualUncertain
			s = s[:len(s)-1]
		case '~':
			qual = QualApproximate
			s = s[:len(s)-1]
		case '%':
			qual = QualUncertainApproximate
			s = s[:len(s)-1]
		}
	}

	if strings.HasPrefix(s, "Y") {
		return parseYearNotation(s)
	}

	if strings.ContainsRune(s, 'X') {
		return parseUnspecified(s, qual)
	}

	if m := dateTimeRe.FindStringSubmatch(s); m != nil {
		return parseDateTime(s, m, qual)
	}

	if m := dateRe.FindStringSubmatch(s); m != nil {
		return parseDate(s, m, qual)
	}

	return nil, &ParseError{Input: s, Reason: "unrecognized notation"}
}

func parseYearNotation(s string) (Value, error) {
	if m := expYearRe.FindStringSubmatch(s); m != nil {
		mantissa, _ := strconv.Atoi(m[1])
		exponent, _ := strconv.Atoi(m[2])
		return ExponentialYear{Mantissa: mantissa, Exponent: exponent}, nil
	}
	if m := longYearRe.FindStringSubmatch(s); m != nil {
		return LongYear{Digits: m[1]}, nil
	}
	return nil, &ParseError{Input: s, Reason: "bad Y-prefixed year notation"}
}

func parseUnspecified(s string, qual Qualifier) (Value, error) {
	m := unspecifiedRe.FindStringSubmatch(s)
	if m == nil {
		return nil, &ParseError{Input: s, Reason: "bad unspecified-digit notation"}
	}
	u := Unspecified{Year: m[1], Month: m[2], Day: m[3], Qualifier: qual}
	// Concrete groups must still be in calendar range.
	if u.Month != "" && !strings.ContainsRune(u.Month, 'X') {
		month, _ := strconv.Atoi(u.Month)
		if month < 1 || month > 12 {
			return nil, &ParseError{Input: s, Reason: "month out of range"}
		}
	}
	if u.Day != "" && !strings.ContainsRune(u.Day, 'X') {
		day, _ := strconv.Atoi(u.Day)
		if day < 1 || day > 31 {
			return nil, &ParseError{Input: s, Reason: "day out of range"}
		}
	}
	return u, nil
}

func parseDateTime(s string, m []string, qual Qualifier) (Value, error) {
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	if month < 1 || month > 12 {
		return nil, &ParseError{Input: s, Reason: "month out of range"}
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return nil, &ParseError{Input: s, Reason: "day out of range"}
	}
	if hour > 23 || minute > 59 || second > 59 {
		return nil, &ParseError{Input: s, Reason: "time out of range"}
	}

	return DateTime{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
		Offset:    m[7],
		Qualifier: qual,
	}, nil
}

func parseDate(s string, m []string, qual Qualifier) (Value, error) {
	year, _ := strconv.Atoi(m[1])

	if m[2] == "" {
		return Date{Year: year, Qualifier: qual}, nil
	}

	month, _ := strconv.Atoi(m[2])
	if code, ok := subdivisionCode(month); ok {
		if m[3] != "" {
			return nil, &ParseError{Input: s, Reason: "subdivision cannot have a day"}
		}
		return Season{Year: year, Code: code, Qualifier: qual}, nil
	}
	if month < 1 || month > 12 {
		return nil, &ParseError{Input: s, Reason: "month out of range"}
	}

	if m[3] == "" {
		return Date{Year: year, Month: month, Qualifier: qual}, nil
	}

	day, _ := strconv.Atoi(m[3])
	if day < 1 || day > DaysInMonth(year, month) {
		return nil, &ParseError{Input: s, Reason: "day out of range"}
	}
	return Date{Year: year, Month: month, Day: day, Qualifier: qual}, nil
}
