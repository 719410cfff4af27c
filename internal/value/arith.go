package value

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxTextLength bounds the byte length of a text produced by repetition.
	MaxTextLength = 1 << 28

	// DivisionScale is the number of fractional digits kept by Divide.
	DivisionScale = 34
)

// Add sums two decimals or concatenates when either side is text; a decimal
// operand is concatenated in its canonical text form.
func Add(left, right Value) (Value, error) {
	left, right = deref(left), deref(right)
	switch l := left.(type) {
	case Decimal:
		switch r := right.(type) {
		case Decimal:
			return Decimal{d: l.d.Add(r.d)}, nil
		case Text:
			return Text{s: l.Inspect() + r.s}, nil
		}
	case Text:
		switch r := right.(type) {
		case Decimal:
			return Text{s: l.s + r.Inspect()}, nil
		case Text:
			return Text{s: l.s + r.s}, nil
		}
	}
	return nil, unsupported("+", left, right)
}

// Subtract is numeric difference for decimals. For texts it removes the first
// occurrence of right from left and is a no-op when right does not occur.
func Subtract(left, right Value) (Value, error) {
	left, right = deref(left), deref(right)
	switch l := left.(type) {
	case Decimal:
		if r, ok := right.(Decimal); ok {
			return Decimal{d: l.d.Sub(r.d)}, nil
		}
	case Text:
		if r, ok := right.(Text); ok {
			return Text{s: strings.Replace(l.s, r.s, "", 1)}, nil
		}
	}
	return nil, unsupported("-", left, right)
}

// Multiply is the numeric product for decimals and repetition for a text and
// a decimal in either order.
func Multiply(left, right Value) (Value, error) {
	left, right = deref(left), deref(right)
	switch l := left.(type) {
	case Decimal:
		switch r := right.(type) {
		case Decimal:
			return Decimal{d: l.d.Mul(r.d)}, nil
		case Text:
			return repeat(left, right, r.s, l.d)
		}
	case Text:
		if r, ok := right.(Decimal); ok {
			return repeat(left, right, l.s, r.d)
		}
	}
	return nil, unsupported("*", left, right)
}

// Divide is only defined for decimals. The quotient is rounded half-up to
// DivisionScale digits and has trailing zeros removed.
func Divide(left, right Value) (Value, error) {
	left, right = deref(left), deref(right)
	l, lok := left.(Decimal)
	r, rok := right.(Decimal)
	if !lok || !rok {
		return nil, unsupported("/", left, right)
	}
	if r.d.IsZero() {
		return nil, invalid("/", left, right, "division by zero")
	}
	q := l.d.DivRound(r.d, DivisionScale)
	return Decimal{d: decimal.RequireFromString(q.String())}, nil
}

// Negate flips the sign of a decimal and reverses the characters of a text.
func Negate(right Value) (Value, error) {
	right = deref(right)
	switch r := right.(type) {
	case Decimal:
		return Decimal{d: r.d.Neg()}, nil
	case Text:
		runes := []rune(r.s)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return Text{s: string(runes)}, nil
	}
	return nil, unsupportedUnary("-", right)
}

func Not(right Value) (Value, error) {
	if r, ok := deref(right).(Boolean); ok {
		return FromBoolean(!r.v), nil
	}
	return nil, unsupportedUnary("!", right)
}

func repeat(left, right Value, s string, count decimal.Decimal) (Value, error) {
	if !count.IsInteger() {
		return nil, invalid("*", left, right, fmt.Sprintf("repeat count must be an integer, got %s", canonical(count)))
	}
	if count.IsNegative() {
		return nil, invalid("*", left, right, fmt.Sprintf("repeat count must be non-negative, got %s", canonical(count)))
	}
	if s == "" {
		return Text{}, nil
	}
	if count.GreaterThan(decimal.NewFromInt(MaxTextLength)) {
		return nil, invalid("*", left, right, fmt.Sprintf("repeat count %s is too large", canonical(count)))
	}
	n := int(count.IntPart())
	if n > MaxTextLength/len(s) {
		return nil, invalid("*", left, right, fmt.Sprintf("repeated text would exceed %d bytes", MaxTextLength))
	}
	return Text{s: strings.Repeat(s, n)}, nil
}
