package interop

import (
	"fmt"

	"jay/internal/value"

	"github.com/shopspring/decimal"
)

// Param describes one host parameter: which values it accepts and how an
// accepted value is converted to the native argument the host function sees.
type Param struct {
	Name    string
	Accepts func(value.Value) bool
	Unwrap  func(value.Value) (any, error)
}

func (p Param) String() string { return p.Name }

// Number accepts any Decimal and passes it as a float64.
func Number(name string) Param {
	return Param{
		Name:    name,
		Accepts: isDecimal,
		Unwrap: func(v value.Value) (any, error) {
			return v.(value.Decimal).Value().InexactFloat64(), nil
		},
	}
}

// Integer accepts a Decimal with no fractional part that fits in an int64.
// 2.0 is accepted, 2.5 is not.
func Integer(name string) Param {
	return Param{
		Name: name,
		Accepts: func(v value.Value) bool {
			d, ok := v.(value.Decimal)
			if !ok {
				return false
			}
			return isInt64(d.Value())
		},
		Unwrap: func(v value.Value) (any, error) {
			d := v.(value.Decimal).Value()
			if !isInt64(d) {
				return nil, fmt.Errorf("%s: %s is not an integer", name, d)
			}
			return d.IntPart(), nil
		},
	}
}

// Exact accepts any Decimal and passes the arbitrary precision value unchanged.
func Exact(name string) Param {
	return Param{
		Name:    name,
		Accepts: isDecimal,
		Unwrap: func(v value.Value) (any, error) {
			return v.(value.Decimal).Value(), nil
		},
	}
}

func Bool(name string) Param {
	return Param{
		Name: name,
		Accepts: func(v value.Value) bool {
			_, ok := v.(value.Boolean)
			return ok
		},
		Unwrap: func(v value.Value) (any, error) {
			return v.(value.Boolean).Value(), nil
		},
	}
}

func String(name string) Param {
	return Param{
		Name: name,
		Accepts: func(v value.Value) bool {
			_, ok := v.(value.Text)
			return ok
		},
		Unwrap: func(v value.Value) (any, error) {
			return v.(value.Text).Value(), nil
		},
	}
}

// Any accepts every value and passes its native form.
func Any(name string) Param {
	return Param{
		Name:    name,
		Accepts: func(v value.Value) bool { return v != nil },
		Unwrap: func(v value.Value) (any, error) {
			return value.ToNative(v), nil
		},
	}
}

// Raw accepts every value and passes the Value itself.
func Raw(name string) Param {
	return Param{
		Name:    name,
		Accepts: func(v value.Value) bool { return v != nil },
		Unwrap:  func(v value.Value) (any, error) { return v, nil },
	}
}

// Handle accepts an Opaque value whose handle is a T.
func Handle[T any](name string) Param {
	return Param{
		Name: name,
		Accepts: func(v value.Value) bool {
			o, ok := v.(value.Opaque)
			if !ok {
				return false
			}
			_, ok = o.Handle().(T)
			return ok
		},
		Unwrap: func(v value.Value) (any, error) {
			h, ok := v.(value.Opaque).Handle().(T)
			if !ok {
				var zero T
				return nil, fmt.Errorf("%s: expected handle of type %T", name, zero)
			}
			return h, nil
		},
	}
}

func isDecimal(v value.Value) bool {
	_, ok := v.(value.Decimal)
	return ok
}

func isInt64(d decimal.Decimal) bool {
	if !d.Equal(d.Truncate(0)) {
		return false
	}
	return d.Truncate(0).BigInt().IsInt64()
}
