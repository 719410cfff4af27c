package foreign

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math"

	"jay/internal/interop"

	"github.com/shopspring/decimal"
)

func mathType() interop.HostType {
	return interop.HostType{
		Name: "jay.math",
		Methods: []interop.Method{
			static("pow", mathPow, interop.Number("base"), interop.Number("exponent")),
			static("sqrt", mathSqrt, interop.Number("n")),
			static("abs", exactUnary(decimal.Decimal.Abs), interop.Exact("n")),
			static("floor", exactUnary(decimal.Decimal.Floor), interop.Exact("n")),
			static("ceil", exactUnary(decimal.Decimal.Ceil), interop.Exact("n")),
			static("round", mathRound, interop.Exact("n")),
			static("round", mathRound, interop.Exact("n"), interop.Integer("places")),
			static("max", mathMax, interop.Exact("a"), interop.Exact("b")),
			static("min", mathMin, interop.Exact("a"), interop.Exact("b")),
			static("rndRange", mathRndRange, interop.Integer("min"), interop.Integer("max")),
		},
	}
}

func mathPow(_ context.Context, _ any, args []any) (any, error) {
	result := math.Pow(args[0].(float64), args[1].(float64))
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return nil, fmt.Errorf("pow(%v, %v) is not a finite number", args[0], args[1])
	}
	return result, nil
}

func mathSqrt(_ context.Context, _ any, args []any) (any, error) {
	n := args[0].(float64)
	if n < 0 {
		return nil, fmt.Errorf("sqrt of negative number %v", n)
	}
	return math.Sqrt(n), nil
}

func exactUnary(fn func(decimal.Decimal) decimal.Decimal) interop.Func {
	return func(_ context.Context, _ any, args []any) (any, error) {
		return fn(args[0].(decimal.Decimal)), nil
	}
}

func mathRound(_ context.Context, _ any, args []any) (any, error) {
	n := args[0].(decimal.Decimal)
	places := int64(0)
	if len(args) > 1 {
		places = args[1].(int64)
	}
	if places < math.MinInt32 || places > math.MaxInt32 {
		return nil, fmt.Errorf("round places out of range: %d", places)
	}
	return n.Round(int32(places)), nil
}

func mathMax(_ context.Context, _ any, args []any) (any, error) {
	a, b := args[0].(decimal.Decimal), args[1].(decimal.Decimal)
	if b.GreaterThan(a) {
		return b, nil
	}
	return a, nil
}

func mathMin(_ context.Context, _ any, args []any) (any, error) {
	a, b := args[0].(decimal.Decimal), args[1].(decimal.Decimal)
	if b.LessThan(a) {
		return b, nil
	}
	return a, nil
}

// mathRndRange returns a random integer in [min, max).
func mathRndRange(_ context.Context, _ any, args []any) (any, error) {
	lo, hi := args[0].(int64), args[1].(int64)
	if lo >= hi {
		return nil, fmt.Errorf("invalid range: min (%d) must be less than max (%d)", lo, hi)
	}

	rangeSize := uint64(hi - lo)
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("failed to generate random number: %w", err)
	}
	return lo + int64(binary.BigEndian.Uint64(b[:])%rangeSize), nil
}
