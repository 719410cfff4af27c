package value

import (
	"errors"
	"strings"
)

// Error kinds reported by the operator table. Use errors.Is against these.
var (
	// ErrTypeMismatch is an ordering operator applied to incompatible variants.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnsupportedOperation is an operator with no meaning for the variant pair.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrInvalidArgument is a well-typed operand with an unusable payload,
	// such as a negative repeat count or a zero divisor.
	ErrInvalidArgument = errors.New("invalid argument")
)

// OperatorError describes a failed operator application. Right is empty for
// unary operators and factories.
type OperatorError struct {
	Kind   error
	Op     string
	Left   Kind
	Right  Kind
	Detail string
}

func (e *OperatorError) Error() string {
	var out strings.Builder
	out.WriteString(e.Kind.Error())
	switch {
	case e.Right != "":
		out.WriteString(": ")
		out.WriteString(string(e.Left))
		out.WriteString(" " + e.Op + " ")
		out.WriteString(string(e.Right))
	case e.Left != "":
		out.WriteString(": ")
		out.WriteString(e.Op)
		out.WriteString(string(e.Left))
	case e.Op != "":
		out.WriteString(": ")
		out.WriteString(e.Op)
	}
	if e.Detail != "" {
		out.WriteString(": ")
		out.WriteString(e.Detail)
	}
	return out.String()
}

func (e *OperatorError) Unwrap() error {
	return e.Kind
}

func mismatch(op string, left, right Value) error {
	return &OperatorError{Kind: ErrTypeMismatch, Op: op, Left: KindOf(left), Right: KindOf(right)}
}

func unsupported(op string, left, right Value) error {
	return &OperatorError{Kind: ErrUnsupportedOperation, Op: op, Left: KindOf(left), Right: KindOf(right)}
}

func unsupportedUnary(op string, right Value) error {
	return &OperatorError{Kind: ErrUnsupportedOperation, Op: op, Left: KindOf(right)}
}

func invalid(op string, left, right Value, detail string) error {
	return &OperatorError{Kind: ErrInvalidArgument, Op: op, Left: KindOf(left), Right: KindOf(right), Detail: detail}
}
