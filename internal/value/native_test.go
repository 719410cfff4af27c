package value

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNative(t *testing.T) {
	type celsius float64
	type label string

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	cases := []struct {
		name     string
		in       any
		kind     Kind
		rendered string
	}{
		{"int", 42, DECIMAL_VAL, "42"},
		{"int8", int8(-8), DECIMAL_VAL, "-8"},
		{"uint64 max", uint64(math.MaxUint64), DECIMAL_VAL, "18446744073709551615"},
		{"float64", 2.5, DECIMAL_VAL, "2.5"},
		{"float32", float32(0.25), DECIMAL_VAL, "0.25"},
		{"named float", celsius(21.5), DECIMAL_VAL, "21.5"},
		{"decimal", decimal.RequireFromString("1.10"), DECIMAL_VAL, "1.10"},
		{"big int", huge, DECIMAL_VAL, "123456789012345678901234567890"},
		{"string", "hi", TEXT_VAL, "hi"},
		{"named string", label("tag"), TEXT_VAL, "tag"},
		{"bool", true, BOOLEAN_VAL, "true"},
		{"existing value", FromText("same"), TEXT_VAL, "same"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := FromNative(c.in)
			require.Equal(t, c.kind, v.Type())
			assert.Equal(t, c.rendered, v.Inspect())
		})
	}
}

func TestFromNativeOpaque(t *testing.T) {
	now := time.Now()
	ch := make(chan int)

	for _, in := range []any{nil, now, ch, []byte("raw"), math.NaN(), math.Inf(1), struct{}{}} {
		v := FromNative(in)
		require.Equal(t, OPAQUE_VAL, v.Type(), "%T", in)
	}

	o := FromNative(ch).(Opaque)
	assert.Equal(t, ch, o.Handle())
}

func TestToNative(t *testing.T) {
	handle := &struct{}{}

	assert.Equal(t, 2.5, ToNative(dec("2.50")))
	assert.Equal(t, "s", ToNative(FromText("s")))
	assert.Equal(t, true, ToNative(TRUE))
	assert.Same(t, handle, ToNative(FromOpaque(handle)))
	assert.Nil(t, ToNative(nil))

	d := dec("2.50")
	assert.Equal(t, 2.5, ToNative(&d))
	var missing *Boolean
	assert.Nil(t, ToNative(missing))
}

func TestNativeRoundTrip(t *testing.T) {
	for _, v := range []Value{dec("8"), FromText("x"), FALSE} {
		assert.True(t, Equal(v, FromNative(ToNative(v))), v.Inspect())
	}
	o := FromOpaque(&struct{}{})
	assert.True(t, Equal(o, FromNative(ToNative(o))))
}
