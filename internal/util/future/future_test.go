package future

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwait(t *testing.T) {
	f := Go(context.Background(), func(context.Context) (int, error) {
		time.Sleep(5 * time.Millisecond)
		return 42, nil
	})

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	select {
	case <-f.Done():
	default:
		t.Fatal("future should be done after Await")
	}
}

func TestAwaitContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	f := Go(context.Background(), func(context.Context) (int, error) {
		<-block
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAll(t *testing.T) {
	cases := []struct {
		name    string
		futures []*Future[int]
		want    []int
		wantErr bool
	}{
		{
			name:    "empty",
			futures: nil,
			want:    []int{},
		},
		{
			name: "ordered values",
			futures: []*Future[int]{
				Go(context.Background(), func(context.Context) (int, error) {
					time.Sleep(10 * time.Millisecond)
					return 1, nil
				}),
				Go(context.Background(), func(context.Context) (int, error) { return 2, nil }),
			},
			want: []int{1, 2},
		},
		{
			name: "failure",
			futures: []*Future[int]{
				Go(context.Background(), func(context.Context) (int, error) { return 1, nil }),
				Go(context.Background(), func(context.Context) (int, error) { return 0, errors.New("failure") }),
			},
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := All(context.Background(), c.futures...)
			if c.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}
