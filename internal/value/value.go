package value

import (
	"fmt"
	"hash/fnv"
	"math"
	"reflect"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	DECIMAL_VAL Kind = "DECIMAL"
	TEXT_VAL    Kind = "TEXT"
	BOOLEAN_VAL Kind = "BOOLEAN"
	OPAQUE_VAL  Kind = "OPAQUE"

	// INVALID_VAL is reported for a nil Value; it is never the Type of a constructed Value.
	INVALID_VAL Kind = "INVALID"
)

var (
	TRUE  = Boolean{v: true}
	FALSE = Boolean{v: false}
)

// Value is the runtime representation of every language-level datum. The set of
// implementations is closed: Decimal, Text, Boolean and Opaque. Values are
// immutable; every operator returns a new Value.
type Value interface {
	Type() Kind
	Inspect() string
	MapKey() MapKey
	sealed()
}

// MapKey is a hash key that is identical for any two values that are Equal.
type MapKey struct {
	Type  Kind
	Value uint64
}

type Decimal struct {
	d decimal.Decimal
}

func (d Decimal) Type() Kind             { return DECIMAL_VAL }
func (d Decimal) Inspect() string        { return canonical(d.d) }
func (d Decimal) String() string         { return d.Inspect() }
func (d Decimal) Value() decimal.Decimal { return d.d }
func (d Decimal) MapKey() MapKey         { return MapKey{Type: DECIMAL_VAL, Value: hashString(d.d.String())} }
func (d Decimal) sealed()                {}

type Text struct {
	s string
}

func (t Text) Type() Kind      { return TEXT_VAL }
func (t Text) Inspect() string { return t.s }
func (t Text) String() string  { return t.s }
func (t Text) Value() string   { return t.s }
func (t Text) MapKey() MapKey  { return MapKey{Type: TEXT_VAL, Value: hashString(t.s)} }
func (t Text) sealed()         {}

type Boolean struct {
	v bool
}

func (b Boolean) Type() Kind      { return BOOLEAN_VAL }
func (b Boolean) Inspect() string { return fmt.Sprintf("%t", b.v) }
func (b Boolean) String() string  { return b.Inspect() }
func (b Boolean) Value() bool     { return b.v }
func (b Boolean) MapKey() MapKey {
	var value uint64
	if b.v {
		value = 1
	}
	return MapKey{Type: BOOLEAN_VAL, Value: value}
}
func (b Boolean) sealed() {}

// Opaque carries a host-owned handle through the value model without
// interpreting it. The id only exists to give the handle a printable name.
type Opaque struct {
	handle any
	id     ulid.ULID
}

func (o Opaque) Type() Kind      { return OPAQUE_VAL }
func (o Opaque) Inspect() string { return "<opaque " + o.id.String() + ">" }
func (o Opaque) String() string  { return o.Inspect() }
func (o Opaque) Handle() any     { return o.handle }
func (o Opaque) ID() ulid.ULID   { return o.id }
func (o Opaque) MapKey() MapKey {
	if o.handle == nil {
		return MapKey{Type: OPAQUE_VAL}
	}
	rv := reflect.ValueOf(o.handle)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		return MapKey{Type: OPAQUE_VAL, Value: uint64(rv.Pointer())}
	}
	if rv.Comparable() {
		return MapKey{Type: OPAQUE_VAL, Value: hashString(fmt.Sprintf("%T:%v", o.handle, o.handle))}
	}
	return MapKey{Type: OPAQUE_VAL, Value: hashString(o.id.String())}
}
func (o Opaque) sealed() {}

func FromDecimal(d decimal.Decimal) Decimal {
	return Decimal{d: d}
}

func FromInt64(i int64) Decimal {
	return Decimal{d: decimal.NewFromInt(i)}
}

// FromFloat64 uses the shortest decimal representation that round-trips f.
func FromFloat64(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, &OperatorError{Kind: ErrInvalidArgument, Op: "decimal", Detail: fmt.Sprintf("%v is not a finite number", f)}
	}
	return Decimal{d: decimal.NewFromFloat(f)}, nil
}

// ParseDecimal keeps the scale of the literal: "1.50" renders as "1.50".
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, &OperatorError{Kind: ErrInvalidArgument, Op: "decimal", Detail: err.Error()}
	}
	return Decimal{d: d}, nil
}

func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func FromText(s string) Text {
	return Text{s: s}
}

func FromBoolean(b bool) Boolean {
	if b {
		return TRUE
	}
	return FALSE
}

func FromOpaque(handle any) Opaque {
	return Opaque{handle: handle, id: ulid.Make()}
}

// KindOf is v.Type() for a constructed value and INVALID_VAL for nil.
func KindOf(v Value) Kind {
	v = deref(v)
	if v == nil {
		return INVALID_VAL
	}
	return v.Type()
}

// deref resolves a pointer to a variant, which satisfies Value through the
// variant's methods, to the variant itself. A nil pointer becomes nil.
func deref(v Value) Value {
	switch p := v.(type) {
	case *Decimal:
		if p != nil {
			return *p
		}
	case *Text:
		if p != nil {
			return *p
		}
	case *Boolean:
		if p != nil {
			return *p
		}
	case *Opaque:
		if p != nil {
			return *p
		}
	default:
		return v
	}
	return nil
}

// canonical renders d with its scale intact. decimal.String trims trailing
// zeros, which would lose the precision the value was entered with.
func canonical(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
