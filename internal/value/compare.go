package value

import (
	"reflect"
	"strings"
)

// Equal is total over all pairs: values of different variants are never
// equal and never produce an error.
func Equal(left, right Value) bool {
	left, right = deref(left), deref(right)
	switch l := left.(type) {
	case nil:
		return right == nil
	case Decimal:
		r, ok := right.(Decimal)
		return ok && l.d.Equal(r.d)
	case Text:
		r, ok := right.(Text)
		return ok && l.s == r.s
	case Boolean:
		r, ok := right.(Boolean)
		return ok && l.v == r.v
	case Opaque:
		r, ok := right.(Opaque)
		return ok && sameHandle(l, r)
	}
	return false
}

func NotEqual(left, right Value) bool {
	return !Equal(left, right)
}

// Compare orders two decimals numerically or two texts by code point. Any
// other pairing is a type mismatch.
func Compare(left, right Value) (int, error) {
	return compare("<=>", left, right)
}

func GreaterThan(left, right Value) (bool, error) {
	c, err := compare(">", left, right)
	return c > 0, err
}

func LessThan(left, right Value) (bool, error) {
	c, err := compare("<", left, right)
	return c < 0, err
}

func GreaterThanEqual(left, right Value) (bool, error) {
	c, err := compare(">=", left, right)
	if err != nil {
		return false, err
	}
	return c > 0 || Equal(left, right), nil
}

func LessThanEqual(left, right Value) (bool, error) {
	c, err := compare("<=", left, right)
	if err != nil {
		return false, err
	}
	return c < 0 || Equal(left, right), nil
}

func compare(op string, left, right Value) (int, error) {
	left, right = deref(left), deref(right)
	switch l := left.(type) {
	case Decimal:
		if r, ok := right.(Decimal); ok {
			return l.d.Cmp(r.d), nil
		}
	case Text:
		if r, ok := right.(Text); ok {
			return strings.Compare(l.s, r.s), nil
		}
	}
	return 0, mismatch(op, left, right)
}

// sameHandle reports reference identity of two host handles. Pointer-like
// handles compare by address; other comparable handles by ==.
func sameHandle(a, b Opaque) bool {
	if a.id == b.id {
		return true
	}
	if a.handle == nil || b.handle == nil {
		return a.handle == nil && b.handle == nil
	}
	ra, rb := reflect.ValueOf(a.handle), reflect.ValueOf(b.handle)
	if ra.Type() != rb.Type() {
		return false
	}
	switch ra.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	case reflect.Func:
		return false
	}
	return ra.Comparable() && rb.Comparable() && ra.Equal(rb)
}
