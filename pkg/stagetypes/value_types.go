package stagetypes

import "strconv"

// Value is a runtime variable value: either a Number or a String.
// The two-variant model is deliberate; INPUT coerces numeric-looking text
// to Number and everything else to String.
type Value interface {
	// Stringify renders the value for output concatenation.
	Stringify() string
	value()
}

// NumberValue is a float64-backed numeric value.
type NumberValue float64

func (v NumberValue) value() {}

// Stringify renders the number in its shortest decimal form, so 1.0
// stringifies as "1".
func (v NumberValue) Stringify() string {
	return strconv.FormatFloat(float64(v), 'g', -1, 64)
}

// StringValue is a plain string value.
type StringValue string

func (v StringValue) value() {}

// Stringify returns the string verbatim.
func (v StringValue) Stringify() string {
	return string(v)
}

// CoerceValue converts raw input text to a Value: a successful float parse
// yields a Number, anything else a String.
func CoerceValue(raw string) Value {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return NumberValue(n)
	}
	return StringValue(raw)
}
