package foreign

import (
	"context"
	"fmt"
	"math"
	"time"

	"jay/internal/interop"
)

var layouts = map[string]string{
	"RFC3339":     time.RFC3339,
	"RFC3339Nano": time.RFC3339Nano,
	"RFC1123":     time.RFC1123,
	"DateTime":    time.DateTime,
	"DateOnly":    time.DateOnly,
	"TimeOnly":    time.TimeOnly,
	"Kitchen":     time.Kitchen,
}

// layout resolves a named layout, otherwise the argument is a Go layout.
func layout(name string) string {
	if l, ok := layouts[name]; ok {
		return l
	}
	return name
}

func timeType() interop.HostType {
	this := interop.Handle[time.Time]("this")
	return interop.HostType{
		Name: "jay.time",
		Methods: []interop.Method{
			static("now", timeNow),
			static("clock", timeClock),
			static("fromUnix", timeFromUnix, interop.Integer("seconds")),
			static("parse", timeParse, interop.String("layout"), interop.String("s")),
			static("sleep", timeSleep, interop.Integer("millis")),
			instance("format", this, timeFormat, interop.String("layout")),
			instance("unix", this, timeUnix),
			instance("addSeconds", this, timeAddSeconds, interop.Number("seconds")),
		},
	}
}

func timeNow(_ context.Context, _ any, _ []any) (any, error) {
	return time.Now(), nil
}

// timeClock returns milliseconds since the Unix epoch.
func timeClock(_ context.Context, _ any, _ []any) (any, error) {
	return time.Now().UnixMilli(), nil
}

func timeFromUnix(_ context.Context, _ any, args []any) (any, error) {
	return time.Unix(args[0].(int64), 0).UTC(), nil
}

func timeParse(_ context.Context, _ any, args []any) (any, error) {
	return time.Parse(layout(args[0].(string)), args[1].(string))
}

// maxSleepMillis is the longest sleep a time.Duration can hold.
const maxSleepMillis = math.MaxInt64 / int64(time.Millisecond)

func timeSleep(ctx context.Context, _ any, args []any) (any, error) {
	millis := args[0].(int64)
	if millis < 0 {
		return nil, fmt.Errorf("sleep duration must be non-negative, got %d", millis)
	}
	if millis > maxSleepMillis {
		return nil, fmt.Errorf("sleep duration %dms exceeds the maximum of %dms", millis, maxSleepMillis)
	}

	timer := time.NewTimer(time.Duration(millis) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func timeFormat(_ context.Context, recv any, args []any) (any, error) {
	return recv.(time.Time).Format(layout(args[0].(string))), nil
}

func timeUnix(_ context.Context, recv any, _ []any) (any, error) {
	return recv.(time.Time).Unix(), nil
}

func timeAddSeconds(_ context.Context, recv any, args []any) (any, error) {
	d := time.Duration(args[0].(float64) * float64(time.Second))
	return recv.(time.Time).Add(d), nil
}
