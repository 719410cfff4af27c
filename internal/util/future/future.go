package future

import (
	"context"
	"sync"
)

// Future is a single-shot result that completes exactly once.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// Go runs fn in a goroutine and completes the Future when fn returns.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		v, err := fn(ctx)
		f.complete(v, err)
	}()
	return f
}

// Await blocks until the Future completes or ctx is done. Cancelling ctx does
// not stop the underlying work.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) Done() <-chan struct{} { return f.done }

// All waits for every future and returns the values in order. The first error
// in order wins.
func All[T any](ctx context.Context, futures ...*Future[T]) ([]T, error) {
	out := make([]T, len(futures))
	for i, fut := range futures {
		v, err := fut.Await(ctx)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.value, f.err = v, err
		close(f.done)
	})
}
