package models

import (
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies the shape category of a JSON value.
type Kind int

const (
	KindInvalid Kind = iota
	KindString
	KindBool
	KindNumber
	KindNull
	KindList
	KindRecord
)

var kindNames = map[Kind]string{
	KindInvalid: "invalid",
	KindString:  "string",
	KindBool:    "boolean",
	KindNumber:  "number",
	KindNull:    "null",
	KindList:    "list",
	KindRecord:  "record",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsScalar reports whether k is a string, boolean or number.
func (k Kind) IsScalar() bool {
	return k == KindString || k == KindBool || k == KindNumber
}

// IsContainer reports whether k is a list or a record.
func (k Kind) IsContainer() bool {
	return k == KindList || k == KindRecord
}

// Value is a parsed JSON value.
// Concrete implementations are String, Bool, Number, Null, List and *Record.
type Value interface {
	Kind() Kind
}

// String is a JSON string.
type String string

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, kept as its literal text so no precision is lost
// between parsing and rendering.
type Number string

// Null is the JSON null literal.
type Null struct{}

// List is a JSON array.
type List []Value

func (String) Kind() Kind  { return KindString }
func (Bool) Kind() Kind    { return KindBool }
func (Number) Kind() Kind  { return KindNumber }
func (Null) Kind() Kind    { return KindNull }
func (List) Kind() Kind    { return KindList }
func (*Record) Kind() Kind { return KindRecord }

func (s String) String() string { return strconv.Quote(string(s)) }
func (b Bool) String() string   { return strconv.FormatBool(bool(b)) }
func (Null) String() string     { return "null" }
func (l List) String() string   { return fmt.Sprintf("list(%d)", len(l)) }

// String renders the number the way a JavaScript runtime would print it:
// the shortest decimal that round-trips, switching to exponent form below
// 1e-6 and from 1e21 upwards. Literals beyond the float64 range print as
// Infinity or -Infinity.
func (n Number) String() string {
	f, err := strconv.ParseFloat(string(n), 64)
	if math.IsInf(f, 0) {
		if f > 0 {
			return "Infinity"
		}
		return "-Infinity"
	}
	if err != nil || math.IsNaN(f) {
		return string(n)
	}
	if f == 0 {
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent turns Go's "1e-07" into "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:i], s[i+1], strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + string(sign) + digits
}

// Record is a JSON object whose keys keep their insertion order.
type Record struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, Value]()}
}

// Set stores value under key. A key that is already present keeps its
// original position and takes the new value.
func (r *Record) Set(key string, value Value) {
	r.fields.Set(key, value)
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	return r.fields.Get(key)
}

// Len returns the number of keys.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Each calls fn for every key/value pair in insertion order, stopping at the
// first error.
func (r *Record) Each(fn func(key string, value Value) error) error {
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// All yields every key/value pair in insertion order.
func (r *Record) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

func (r *Record) String() string {
	if r == nil {
		return "record(nil)"
	}
	return fmt.Sprintf("record(%d)", r.Len())
}

// IntermediateRepresentation holds one parsed input document.
type IntermediateRepresentation struct {
	Root     Value
	RootKind Kind
	// Format is the syntax the document was decoded from ("json" or "yaml").
	Format string
}
