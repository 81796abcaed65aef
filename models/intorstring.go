package models

import (
	"math"
	"strconv"

	"calbridge/errs"
)

// IntOrString is a tagged union for identifier parameters that callers may
// send either as a JSON number or as a string. The voice-assistant layer is
// inconsistent about which form it produces, so both are accepted and
// normalized explicitly rather than coerced implicitly.
type IntOrString struct {
	IntVal int
	StrVal string
	IsInt  bool
}

// NewIntOrString builds an IntOrString from a decoded JSON value. Numbers
// must be integral; anything other than a number or a string is rejected.
func NewIntOrString(field string, v any) (IntOrString, error) {
	switch t := v.(type) {
	case int:
		return IntOrString{IntVal: t, IsInt: true}, nil
	case int64:
		return IntOrString{IntVal: int(t), IsInt: true}, nil
	case float64:
		if t != math.Trunc(t) {
			return IntOrString{}, errs.ValidationErrorf("parameter %q must be an integer, got %v", field, t)
		}
		return IntOrString{IntVal: int(t), IsInt: true}, nil
	case string:
		return IntOrString{StrVal: t}, nil
	default:
		return IntOrString{}, errs.ValidationErrorf("parameter %q must be an integer or string, got %T", field, v)
	}
}

// Int normalizes the value to an integer. A string value is parsed base-10;
// a non-numeric string yields a ValidationError naming the field and the
// offending value.
func (v IntOrString) Int(field string) (int, error) {
	if v.IsInt {
		return v.IntVal, nil
	}
	n, err := strconv.Atoi(v.StrVal)
	if err != nil {
		return 0, errs.ValidationErrorf("parameter %q has invalid numeric value %q", field, v.StrVal)
	}
	return n, nil
}

// Canonicalize coerces a digit-only string value into its integer form,
// leaving opaque string identifiers (UIDs with hyphens or letters) as-is.
func (v IntOrString) Canonicalize() IntOrString {
	if v.IsInt {
		return v
	}
	if n, err := strconv.Atoi(v.StrVal); err == nil {
		return IntOrString{IntVal: n, IsInt: true}
	}
	return v
}

// String returns the string form of the value.
func (v IntOrString) String() string {
	if v.IsInt {
		return strconv.Itoa(v.IntVal)
	}
	return v.StrVal
}
