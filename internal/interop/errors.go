package interop

import (
	"errors"
	"fmt"
	"strings"

	"jay/internal/value"
)

var (
	ErrUnknownType        = errors.New("unknown host type")
	ErrUnknownMethod      = errors.New("unknown method")
	ErrNoMatchingOverload = errors.New("no matching overload")
	ErrMissingReceiver    = errors.New("missing receiver")
	ErrDuplicateType      = errors.New("host type already registered")
)

// ResolutionError reports that a call could not be matched to a host method.
type ResolutionError struct {
	Type   string
	Method string
	Args   []value.Kind
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", signature(e.Type, e.Method, e.Args), e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// InvocationError wraps a failure raised by the host function itself.
type InvocationError struct {
	Type   string
	Method string
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s.%s failed: %v", e.Type, e.Method, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}

func signature(typ, method string, args []value.Kind) string {
	if method == "" {
		return typ
	}
	kinds := make([]string, len(args))
	for i, k := range args {
		kinds[i] = string(k)
	}
	return fmt.Sprintf("%s.%s(%s)", typ, method, strings.Join(kinds, ", "))
}

func kinds(args []value.Value) []value.Kind {
	out := make([]value.Kind, len(args))
	for i, a := range args {
		out[i] = value.KindOf(a)
	}
	return out
}
