package dataset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind is the semantic type of a single cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "numeric"
	case KindString:
		return "string"
	default:
		return "null"
	}
}

// Value is one cell of a Dataset. The zero Value is null.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Num returns a numeric Value.
func Num(f float64) Value { return Value{kind: KindNumber, num: f} }

// Str returns a string Value.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Null returns the missing-value marker.
func Null() Value { return Value{} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) IsNumber() bool { return v.kind == KindNumber }
func (v Value) IsString() bool { return v.kind == KindString }

// Float returns the numeric payload and whether v is numeric.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the string payload and whether v is a string.
func (v Value) Text() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Key identifies v for distinct-value counting. Numbers and strings never share a key.
func (v Value) Key() string {
	switch v.kind {
	case KindNumber:
		f := v.num
		if f == 0 {
			f = 0 // -0 and 0 are one value
		}
		return "n:" + strconv.FormatFloat(f, 'g', -1, 64)
	case KindString:
		return "s:" + v.str
	default:
		return "null"
	}
}

// String renders the value the way it is written back to CSV.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(o Value) bool { return v.Key() == o.Key() }

var nullTokens = map[string]bool{"NA": true, "N/A": true, "NaN": true, "nan": true, "null": true, "NULL": true}

// Infer converts a raw cell into a Value: blank is null, a finite float is numeric, anything else
// (including "inf") is a string.
func Infer(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" || nullTokens[s] {
		return Null()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return Num(f)
	}
	return Str(s)
}

// MarshalJSON encodes numbers as JSON numbers, strings as strings and null as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return json.Marshal(v.String())
		}
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	default:
		return []byte("null"), nil
	}
}
