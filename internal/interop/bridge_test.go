package interop

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"

	"jay/internal/util/future"
	"jay/internal/value"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) value.Decimal {
	return value.MustParseDecimal(s)
}

type counter struct {
	n int64
}

func testBridge(t *testing.T) *Bridge {
	t.Helper()
	b := NewBridge(slog.New(slog.DiscardHandler))
	exact := Exact("n")

	require.NoError(t, b.Register(HostType{
		Name: "test.math",
		Methods: []Method{
			{
				Name:   "pow",
				Params: []Param{Number("base"), Number("exp")},
				Fn: func(_ context.Context, _ any, args []any) (any, error) {
					return math.Pow(args[0].(float64), args[1].(float64)), nil
				},
			},
			{
				Name:   "describe",
				Params: []Param{Integer("n")},
				Fn: func(_ context.Context, _ any, args []any) (any, error) {
					return "integer", nil
				},
			},
			{
				Name:   "describe",
				Params: []Param{Number("n")},
				Fn: func(_ context.Context, _ any, args []any) (any, error) {
					return "number", nil
				},
			},
			{
				Name:   "describe",
				Params: []Param{String("s")},
				Fn: func(_ context.Context, _ any, args []any) (any, error) {
					return "string", nil
				},
			},
			{
				Name:     "sum",
				Variadic: &exact,
				Fn: func(_ context.Context, _ any, args []any) (any, error) {
					total := decimal.Zero
					for _, a := range args {
						total = total.Add(a.(decimal.Decimal))
					}
					return total, nil
				},
			},
			{
				Name:   "fail",
				Params: []Param{},
				Fn: func(_ context.Context, _ any, _ []any) (any, error) {
					return nil, errors.New("boom")
				},
			},
		},
	}))

	handle := Handle[*counter]("counter")
	require.NoError(t, b.Register(HostType{
		Name: "test.counter",
		Methods: []Method{
			{
				Name: "new",
				Fn: func(_ context.Context, _ any, _ []any) (any, error) {
					return &counter{}, nil
				},
			},
			{
				Name:     "add",
				Receiver: &handle,
				Params:   []Param{Integer("delta")},
				Fn: func(_ context.Context, recv any, args []any) (any, error) {
					c := recv.(*counter)
					c.n += args[0].(int64)
					return c.n, nil
				},
			},
			{
				Name:     "get",
				Receiver: &handle,
				Fn: func(_ context.Context, recv any, _ []any) (any, error) {
					return recv.(*counter).n, nil
				},
			},
		},
	}))
	return b
}

func TestBridgePowRoundTrip(t *testing.T) {
	b := testBridge(t)

	result, err := b.Call(context.Background(), "test.math", "pow", dec("2.0"), dec("3.0"))
	require.NoError(t, err)
	assert.Equal(t, value.DECIMAL_VAL, result.Type())
	assert.True(t, value.Equal(dec("8.0"), result))
}

func TestBridgeMethodNamesIgnoreCase(t *testing.T) {
	b := testBridge(t)

	for _, name := range []string{"pow", "POW", "Pow"} {
		t.Run(name, func(t *testing.T) {
			result, err := b.Call(context.Background(), "test.math", name, dec("3"), dec("2"))
			require.NoError(t, err)
			assert.Equal(t, "9", result.Inspect())
		})
	}
}

func TestBridgeOverloadSelection(t *testing.T) {
	b := testBridge(t)

	cases := []struct {
		name     string
		arg      value.Value
		expected string
	}{
		{"integral decimal", dec("2"), "integer"},
		{"integral with scale", dec("2.0"), "integer"},
		{"fractional decimal", dec("2.5"), "number"},
		{"text", value.FromText("x"), "string"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result, err := b.Call(context.Background(), "test.math", "describe", c.arg)
			require.NoError(t, err)
			assert.Equal(t, value.FromText(c.expected), result)
		})
	}

	_, err := b.Call(context.Background(), "test.math", "describe", value.TRUE)
	require.ErrorIs(t, err, ErrNoMatchingOverload)
	assert.EqualError(t, err, "test.math.describe(BOOLEAN): no matching overload")

	_, err = b.Call(context.Background(), "test.math", "describe", dec("1"), dec("2"))
	require.ErrorIs(t, err, ErrNoMatchingOverload)
}

func TestBridgeVariadic(t *testing.T) {
	b := testBridge(t)

	result, err := b.Call(context.Background(), "test.math", "sum")
	require.NoError(t, err)
	assert.Equal(t, "0", result.Inspect())

	result, err = b.Call(context.Background(), "test.math", "sum", dec("0.1"), dec("0.2"), dec("0.3"))
	require.NoError(t, err)
	assert.Equal(t, "0.6", result.Inspect())

	_, err = b.Call(context.Background(), "test.math", "sum", dec("1"), value.FromText("2"))
	require.ErrorIs(t, err, ErrNoMatchingOverload)
}

func TestBridgeInstanceMethods(t *testing.T) {
	b := testBridge(t)
	ctx := context.Background()

	c, err := b.Call(ctx, "test.counter", "new")
	require.NoError(t, err)
	require.Equal(t, value.OPAQUE_VAL, c.Type())

	_, err = b.Call(ctx, "test.counter", "add", c, dec("5"))
	require.NoError(t, err)
	result, err := b.Call(ctx, "test.counter", "add", c, dec("2"))
	require.NoError(t, err)
	assert.True(t, value.Equal(dec("7"), result))

	result, err = b.Call(ctx, "test.counter", "get", c)
	require.NoError(t, err)
	assert.True(t, value.Equal(dec("7"), result))

	_, err = b.Call(ctx, "test.counter", "get")
	require.ErrorIs(t, err, ErrMissingReceiver)

	_, err = b.Call(ctx, "test.counter", "get", dec("1"))
	require.ErrorIs(t, err, ErrNoMatchingOverload)
}

func TestBridgeResolutionErrors(t *testing.T) {
	b := testBridge(t)

	_, err := b.Call(context.Background(), "test.nothing", "pow")
	require.ErrorIs(t, err, ErrUnknownType)
	var resolution *ResolutionError
	require.ErrorAs(t, err, &resolution)
	assert.Equal(t, "test.nothing", resolution.Type)

	_, err = b.Call(context.Background(), "test.math", "cube", dec("2"))
	require.ErrorIs(t, err, ErrUnknownMethod)

	_, err = b.Bind("TEST.MATH", "pow")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestBridgeInvocationError(t *testing.T) {
	b := testBridge(t)

	_, err := b.Call(context.Background(), "test.math", "fail")
	var invocation *InvocationError
	require.ErrorAs(t, err, &invocation)
	assert.Equal(t, "fail", invocation.Method)
	assert.EqualError(t, err, "test.math.fail failed: boom")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = b.Call(ctx, "test.math", "pow", dec("1"), dec("1"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestBridgeRegister(t *testing.T) {
	b := testBridge(t)

	err := b.Register(HostType{Name: "test.math"})
	require.ErrorIs(t, err, ErrDuplicateType)

	err = b.Register(HostType{})
	require.Error(t, err)

	err = b.Register(HostType{Name: "test.broken", Methods: []Method{{Name: "x"}}})
	require.Error(t, err)

	assert.Equal(t, []string{"test.counter", "test.math"}, b.Types())
}

func TestBindCallSiteReuse(t *testing.T) {
	b := testBridge(t)

	site, err := b.Bind("test.math", "describe")
	require.NoError(t, err)
	assert.Equal(t, 3, site.Candidates())

	var wg sync.WaitGroup
	results := make([]value.Value, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := site.Invoke(context.Background(), dec("1"))
			if err == nil {
				results[i] = r
			}
		}()
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, value.FromText("integer"), r)
	}
}

func TestInvokeAsync(t *testing.T) {
	b := testBridge(t)

	site, err := b.Bind("test.math", "pow")
	require.NoError(t, err)

	pending := []*future.Future[value.Value]{
		site.InvokeAsync(context.Background(), dec("2"), dec("2")),
		site.InvokeAsync(context.Background(), dec("2"), dec("3")),
	}
	results, err := future.All(context.Background(), pending...)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "4", results[0].Inspect())
	assert.Equal(t, "8", results[1].Inspect())

	_, err = site.InvokeAsync(context.Background(), dec("2")).Await(context.Background())
	require.ErrorIs(t, err, ErrNoMatchingOverload)
}

func TestMethodString(t *testing.T) {
	h := Handle[*counter]("counter")
	m := Method{Name: "add", Receiver: &h, Params: []Param{Integer("delta")}, Variadic: &Param{Name: "rest"}}
	assert.Equal(t, "add(this counter, delta, rest...)", m.String())
	assert.False(t, m.IsStatic())
	assert.True(t, strings.HasPrefix(Method{Name: "now"}.String(), "now("))
}
