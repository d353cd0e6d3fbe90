package validation

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// FieldError reports the first invalid query parameter.
type FieldError struct {
	Field  string
	Reason string
}

// Error renders "[field]: reason" in lower case, the wire format of 400 bodies.
func (e *FieldError) Error() string {
	return strings.ToLower(fmt.Sprintf("[%s]: %s", e.Field, e.Reason))
}

func Invalid(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// Everything except digits, the decimal point and the minus sign.
var nonNumericRe = regexp.MustCompile(`[^0-9.\-]`)

// ProcessNumber strips formatting ("₱1,200,000", "120 sqm") and parses what is left.
// A value with nothing numeric left, or more than one decimal point, yields NaN.
func ProcessNumber(raw string) float64 {
	s := nonNumericRe.ReplaceAllString(raw, "")
	negative := strings.HasPrefix(s, "-")
	s = strings.ReplaceAll(s, "-", "")
	if s == "" || strings.Count(s, ".") > 1 {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	if negative {
		f = -f
	}
	return f
}

// Values wraps a query string and reads typed optional fields from it.
type Values struct {
	raw url.Values
}

func NewValues(raw url.Values) Values {
	return Values{raw: raw}
}

// String returns the trimmed value and whether the key was supplied non-empty.
func (v Values) String(field string) (string, bool) {
	if !v.raw.Has(field) {
		return "", false
	}
	s := strings.TrimSpace(v.raw.Get(field))
	return s, s != ""
}

// RequiredString fails with "required" when the key is absent or blank.
func (v Values) RequiredString(field string) (string, error) {
	s, ok := v.String(field)
	if !ok {
		return "", Invalid(field, "required")
	}
	return s, nil
}

// Number returns nil when the key is absent and an error when it is not a number.
func (v Values) Number(field string) (*float64, error) {
	if !v.raw.Has(field) {
		return nil, nil
	}
	f := ProcessNumber(v.raw.Get(field))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, Invalid(field, "expected number, received nan")
	}
	return &f, nil
}

// NonNegative is Number restricted to values >= 0.
func (v Values) NonNegative(field string) (*float64, error) {
	return v.AtLeast(field, 0)
}

// AtLeast is Number restricted to values >= min.
func (v Values) AtLeast(field string, min float64) (*float64, error) {
	f, err := v.Number(field)
	if err != nil || f == nil {
		return f, err
	}
	if *f < min {
		return nil, Invalid(field, "number must be greater than or equal to "+strconv.FormatFloat(min, 'f', -1, 64))
	}
	return f, nil
}

// Enum fails closed: any value outside allowed is rejected, never coerced.
func (v Values) Enum(field string, allowed []string) (string, bool, error) {
	if !v.raw.Has(field) {
		return "", false, nil
	}
	s := v.raw.Get(field)
	for _, a := range allowed {
		if s == a {
			return s, true, nil
		}
	}
	return "", false, Invalid(field, enumReason(allowed, s))
}

// RequiredEnum is Enum with "required" for an absent key.
func (v Values) RequiredEnum(field string, allowed []string) (string, error) {
	if !v.raw.Has(field) {
		return "", Invalid(field, "required")
	}
	s, _, err := v.Enum(field, allowed)
	return s, err
}

func enumReason(allowed []string, received string) string {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	return fmt.Sprintf("invalid enum value. expected %s, received '%s'", strings.Join(quoted, " | "), received)
}

// ParseQuery decodes a raw query string. Malformed pairs are dropped rather
// than failing the request; the typed readers report what is missing.
func ParseQuery(raw string) url.Values {
	v, _ := url.ParseQuery(raw)
	if v == nil {
		v = url.Values{}
	}
	return v
}
