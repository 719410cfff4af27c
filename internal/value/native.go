package value

import (
	"math"
	"math/big"
	"reflect"

	"github.com/shopspring/decimal"
)

// FromNative wraps a host value using the variant-inference rule shared with
// the interop bridge: numbers become Decimal, strings Text, booleans Boolean
// and everything else, nil and non-finite floats included, Opaque.
func FromNative(v any) Value {
	switch x := v.(type) {
	case Value:
		if d := deref(x); d != nil {
			return d
		}
		return FromOpaque(nil)
	case nil:
		return FromOpaque(nil)
	case decimal.Decimal:
		return Decimal{d: x}
	case *big.Int:
		if x == nil {
			return FromOpaque(x)
		}
		return Decimal{d: decimal.NewFromBigInt(x, 0)}
	case string:
		return Text{s: x}
	case bool:
		return FromBoolean(x)
	case int:
		return FromInt64(int64(x))
	case int64:
		return FromInt64(x)
	case float64:
		if d, err := FromFloat64(x); err == nil {
			return d
		}
		return FromOpaque(x)
	}

	// named and narrower numeric types
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return FromInt64(int64(u))
		}
		return Decimal{d: decimal.NewFromBigInt(new(big.Int).SetUint64(u), 0)}
	case reflect.Float32:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return FromOpaque(v)
		}
		return Decimal{d: decimal.NewFromFloat32(float32(f))}
	case reflect.Float64:
		if d, err := FromFloat64(rv.Float()); err == nil {
			return d
		}
	case reflect.String:
		return Text{s: rv.String()}
	case reflect.Bool:
		return FromBoolean(rv.Bool())
	}
	return FromOpaque(v)
}

// ToNative unwraps v for host code: Decimal becomes float64, Text string,
// Boolean bool and Opaque its handle.
func ToNative(v Value) any {
	switch x := deref(v).(type) {
	case nil:
		return nil
	case Decimal:
		return x.d.InexactFloat64()
	case Text:
		return x.s
	case Boolean:
		return x.v
	case Opaque:
		return x.handle
	}
	return v
}
