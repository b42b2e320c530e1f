package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

var errTrailingData = errors.New("trailing data after JSON value")

// Value is a loosely shaped JSON value. Normalizers switch on Kind instead of
// poking at interface{} with ad hoc type assertions.
type Value struct {
	kind Kind
	b    bool
	num  string // literal text for numbers
	str  string
	arr  []Value
	obj  map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: cast.ToString(f)}
}

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

// Object wraps a set of fields.
func Object(fields map[string]Value) Value {
	if fields == nil {
		fields = map[string]Value{}
	}
	return Value{kind: KindObject, obj: fields}
}

// Parse decodes JSON into a Value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var decoded any
	if err := dec.Decode(&decoded); err != nil {
		return Null(), err
	}
	if dec.More() {
		return Null(), errTrailingData
	}
	return FromAny(decoded), nil
}

// ParseText interprets a response body: empty text is null, valid JSON is
// decoded, anything else is kept as a string.
func ParseText(text string) Value {
	if strings.TrimSpace(text) == "" {
		return Null()
	}
	v, err := Parse([]byte(text))
	if err != nil {
		return String(text)
	}
	return v
}

// FromAny converts decoded JSON (or plain Go values) into a Value.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case json.Number:
		return Value{kind: KindNumber, num: t.String()}
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Value{kind: KindNumber, num: strconv.Itoa(t)}
	case int64:
		return Value{kind: KindNumber, num: strconv.FormatInt(t, 10)}
	case string:
		return String(t)
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			items = append(items, FromAny(item))
		}
		return Array(items...)
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = FromAny(item)
		}
		return Object(fields)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return Null()
		}
		parsed, err := Parse(data)
		if err != nil {
			return Null()
		}
		return parsed
	}
}

// Kind reports the variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Field returns the named field of an object, or null.
func (v Value) Field(name string) Value {
	if v.kind != KindObject {
		return Null()
	}
	return v.obj[name]
}

// Has reports whether an object carries the field at all, even as null.
func (v Value) Has(name string) bool {
	if v.kind != KindObject {
		return false
	}
	_, ok := v.obj[name]
	return ok
}

// Path walks nested object fields.
func (v Value) Path(names ...string) Value {
	cur := v
	for _, name := range names {
		cur = cur.Field(name)
	}
	return cur
}

// Items returns the elements of an array, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Keys returns the sorted field names of an object.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Text returns the trimmed string form of strings and numbers. Blank strings
// and every other kind report false.
func (v Value) Text() (string, bool) {
	switch v.kind {
	case KindString:
		s := strings.TrimSpace(v.str)
		return s, s != ""
	case KindNumber:
		f, ok := v.Float()
		if ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return strconv.FormatInt(int64(f), 10), true
		}
		return v.num, v.num != ""
	case KindNull, KindBool, KindArray, KindObject:
		return "", false
	default:
		return "", false
	}
}

// Raw returns the untrimmed string for string values.
func (v Value) Raw() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Float returns numbers and numeric strings as finite floats.
func (v Value) Float() (float64, bool) {
	var f float64
	var err error
	switch v.kind {
	case KindNumber:
		f, err = cast.ToFloat64E(v.num)
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0, false
		}
		f, err = cast.ToFloat64E(s)
	case KindNull, KindBool, KindArray, KindObject:
		return 0, false
	default:
		return 0, false
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Truth returns booleans, plus the usual string and number spellings of them.
func (v Value) Truth() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindNumber:
		f, ok := v.Float()
		if !ok {
			return false, false
		}
		return f != 0, true
	case KindString:
		b, err := cast.ToBoolE(strings.ToLower(strings.TrimSpace(v.str)))
		if err != nil {
			return false, false
		}
		return b, true
	case KindNull, KindArray, KindObject:
		return false, false
	default:
		return false, false
	}
}

// Interface converts back to plain Go values suitable for encoding/json.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindNumber:
		return json.Number(v.num)
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, 0, len(v.arr))
		for _, item := range v.arr {
			out = append(out, item.Interface())
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj))
		for k, item := range v.obj {
			out[k] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
