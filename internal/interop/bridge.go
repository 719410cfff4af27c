package interop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"jay/internal/util/future"
	"jay/internal/value"
)

// Func is the native body of a host method. recv is nil for static methods.
type Func func(ctx context.Context, recv any, args []any) (any, error)

// Method is one overload of a host operation. A nil Receiver makes the method
// static; otherwise the first call argument is bound to the receiver. Variadic,
// when set, accepts any number of trailing arguments after Params.
type Method struct {
	Name     string
	Receiver *Param
	Params   []Param
	Variadic *Param
	Fn       Func
}

func (m Method) IsStatic() bool {
	return m.Receiver == nil
}

func (m Method) String() string {
	names := make([]string, 0, len(m.Params)+2)
	if m.Receiver != nil {
		names = append(names, "this "+m.Receiver.Name)
	}
	for _, p := range m.Params {
		names = append(names, p.Name)
	}
	if m.Variadic != nil {
		names = append(names, m.Variadic.Name+"...")
	}
	return fmt.Sprintf("%s(%s)", m.Name, strings.Join(names, ", "))
}

func (m Method) accepts(args []value.Value) bool {
	if m.Receiver != nil {
		if len(args) == 0 || !m.Receiver.Accepts(args[0]) {
			return false
		}
		args = args[1:]
	}
	if len(args) < len(m.Params) || (m.Variadic == nil && len(args) != len(m.Params)) {
		return false
	}
	for i, p := range m.Params {
		if !p.Accepts(args[i]) {
			return false
		}
	}
	for _, a := range args[len(m.Params):] {
		if !m.Variadic.Accepts(a) {
			return false
		}
	}
	return true
}

func (m Method) unwrap(args []value.Value) (any, []any, error) {
	var recv any
	if m.Receiver != nil {
		r, err := m.Receiver.Unwrap(args[0])
		if err != nil {
			return nil, nil, err
		}
		recv = r
		args = args[1:]
	}
	native := make([]any, len(args))
	for i, a := range args {
		p := m.Variadic
		if i < len(m.Params) {
			p = &m.Params[i]
		}
		n, err := p.Unwrap(a)
		if err != nil {
			return nil, nil, err
		}
		native[i] = n
	}
	return recv, native, nil
}

// HostType groups the methods published under one fully qualified name.
type HostType struct {
	Name    string
	Methods []Method
}

// Bridge is the registry of host types. It is safe for concurrent use.
type Bridge struct {
	mu    sync.RWMutex
	types map[string]HostType
	log   *slog.Logger
}

func NewBridge(log *slog.Logger) *Bridge {
	if log == nil {
		log = slog.Default()
	}
	return &Bridge{
		types: make(map[string]HostType),
		log:   log,
	}
}

func (b *Bridge) Register(t HostType) error {
	if t.Name == "" {
		return errors.New("host type name must not be empty")
	}
	for _, m := range t.Methods {
		if m.Name == "" || m.Fn == nil {
			return fmt.Errorf("host type %s: method %q has no name or body", t.Name, m.Name)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.types[t.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateType, t.Name)
	}
	b.types[t.Name] = t

	b.log.Debug("registered host type",
		slog.String("type", t.Name),
		slog.Int("methods", len(t.Methods)))
	return nil
}

// Types returns the registered host type names in sorted order.
func (b *Bridge) Types() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.types))
	for name := range b.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind resolves the overloads of method on typ. Type names match exactly,
// method names match case-insensitively.
func (b *Bridge) Bind(typ, method string) (*CallSite, error) {
	b.mu.RLock()
	t, ok := b.types[typ]
	b.mu.RUnlock()
	if !ok {
		return nil, &ResolutionError{Type: typ, Err: ErrUnknownType}
	}

	var candidates []Method
	for _, m := range t.Methods {
		if strings.EqualFold(m.Name, method) {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, &ResolutionError{Type: typ, Method: method, Err: ErrUnknownMethod}
	}
	return &CallSite{
		Type:       t.Name,
		Method:     method,
		candidates: candidates,
		log:        b.log,
	}, nil
}

func (b *Bridge) Call(ctx context.Context, typ, method string, args ...value.Value) (value.Value, error) {
	site, err := b.Bind(typ, method)
	if err != nil {
		return nil, err
	}
	return site.Invoke(ctx, args...)
}

// CallSite is a bound method name ready to be invoked with arguments.
type CallSite struct {
	Type       string
	Method     string
	candidates []Method
	log        *slog.Logger
}

func (c *CallSite) Candidates() int {
	return len(c.candidates)
}

// Invoke selects the first overload, in registration order, that accepts args
// and calls it. The native result is wrapped back into a Value.
func (c *CallSite) Invoke(ctx context.Context, args ...value.Value) (value.Value, error) {
	c.log.Debug("dispatching host call",
		slog.String("type", c.Type),
		slog.String("method", c.Method),
		slog.Int("candidates", len(c.candidates)),
		slog.Int("arity", len(args)))

	if len(args) == 0 && !c.hasStatic() {
		return nil, &ResolutionError{Type: c.Type, Method: c.Method, Err: ErrMissingReceiver}
	}

	for _, m := range c.candidates {
		if !m.accepts(args) {
			continue
		}
		c.log.Debug("selected overload", slog.String("overload", m.String()))

		if err := ctx.Err(); err != nil {
			return nil, &InvocationError{Type: c.Type, Method: m.Name, Err: err}
		}
		recv, native, err := m.unwrap(args)
		if err != nil {
			return nil, &InvocationError{Type: c.Type, Method: m.Name, Err: err}
		}
		result, err := m.Fn(ctx, recv, native)
		if err != nil {
			return nil, &InvocationError{Type: c.Type, Method: m.Name, Err: err}
		}
		return value.FromNative(result), nil
	}

	c.log.Debug("no overload matched", slog.Int("arity", len(args)))
	return nil, &ResolutionError{Type: c.Type, Method: c.Method, Args: kinds(args), Err: ErrNoMatchingOverload}
}

// InvokeAsync runs Invoke on its own goroutine.
func (c *CallSite) InvokeAsync(ctx context.Context, args ...value.Value) *future.Future[value.Value] {
	return future.Go(ctx, func(ctx context.Context) (value.Value, error) {
		return c.Invoke(ctx, args...)
	})
}

func (c *CallSite) hasStatic() bool {
	for _, m := range c.candidates {
		if m.IsStatic() {
			return true
		}
	}
	return false
}
