package foreign

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"jay/internal/interop"
	"jay/internal/value"
)

func stringType() interop.HostType {
	this := interop.String("this")
	return interop.HostType{
		Name: "jay.string",
		Methods: []interop.Method{
			instance("concat", this, stringConcat, interop.String("other")),
			instance("length", this, stringLength),
			instance("toUpperCase", this, stringMap(strings.ToUpper)),
			instance("toLowerCase", this, stringMap(strings.ToLower)),
			instance("trim", this, stringMap(strings.TrimSpace)),
			instance("indexOf", this, stringIndexOf, interop.String("needle")),
			instance("indexOf", this, stringIndexOf, interop.String("needle"), interop.Integer("from")),
			instance("substring", this, stringSubstring, interop.Integer("begin")),
			instance("substring", this, stringSubstring, interop.Integer("begin"), interop.Integer("end")),
			instance("contains", this, stringContains, interop.String("needle")),
			static("valueOf", stringValueOf, interop.Raw("v")),
		},
	}
}

func stringConcat(_ context.Context, recv any, args []any) (any, error) {
	return recv.(string) + args[0].(string), nil
}

func stringLength(_ context.Context, recv any, _ []any) (any, error) {
	return utf8.RuneCountInString(recv.(string)), nil
}

func stringMap(fn func(string) string) interop.Func {
	return func(_ context.Context, recv any, _ []any) (any, error) {
		return fn(recv.(string)), nil
	}
}

// stringIndexOf works in runes. A negative start is treated as zero.
func stringIndexOf(_ context.Context, recv any, args []any) (any, error) {
	hay, needle := recv.(string), args[0].(string)

	byteStart := 0
	if len(args) > 1 {
		for i := int64(0); i < args[1].(int64) && byteStart < len(hay); i++ {
			_, size := utf8.DecodeRuneInString(hay[byteStart:])
			byteStart += size
		}
	}

	byteIdx := strings.Index(hay[byteStart:], needle)
	if byteIdx < 0 {
		return -1, nil
	}
	return utf8.RuneCountInString(hay[:byteStart+byteIdx]), nil
}

func stringSubstring(_ context.Context, recv any, args []any) (any, error) {
	runes := []rune(recv.(string))
	begin, end := args[0].(int64), int64(len(runes))
	if len(args) > 1 {
		end = args[1].(int64)
	}
	if begin < 0 || end > int64(len(runes)) || begin > end {
		return nil, fmt.Errorf("substring range [%d, %d) out of bounds for length %d", begin, end, len(runes))
	}
	return string(runes[begin:end]), nil
}

func stringContains(_ context.Context, recv any, args []any) (any, error) {
	return strings.Contains(recv.(string), args[0].(string)), nil
}

func stringValueOf(_ context.Context, _ any, args []any) (any, error) {
	return args[0].(value.Value).Inspect(), nil
}
