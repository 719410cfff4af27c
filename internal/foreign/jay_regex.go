package foreign

import (
	"context"
	"regexp"
	"unicode/utf8"

	"jay/internal/interop"
)

func regexType() interop.HostType {
	this := interop.Handle[*regexp.Regexp]("this")
	return interop.HostType{
		Name: "jay.regex",
		Methods: []interop.Method{
			static("compile", regexCompile, interop.String("pattern")),
			instance("matches", this, regexMatches, interop.String("s")),
			static("matches", regexMatchString, interop.String("pattern"), interop.String("s")),
			instance("replaceAll", this, regexReplaceAll, interop.String("s"), interop.String("replacement")),
			instance("find", this, regexFind, interop.String("s")),
			instance("indexOf", this, regexIndexOf, interop.String("s")),
		},
	}
}

func regexCompile(_ context.Context, _ any, args []any) (any, error) {
	return regexp.Compile(args[0].(string))
}

func regexMatches(_ context.Context, recv any, args []any) (any, error) {
	return recv.(*regexp.Regexp).MatchString(args[0].(string)), nil
}

func regexMatchString(_ context.Context, _ any, args []any) (any, error) {
	return regexp.MatchString(args[0].(string), args[1].(string))
}

func regexReplaceAll(_ context.Context, recv any, args []any) (any, error) {
	return recv.(*regexp.Regexp).ReplaceAllString(args[0].(string), args[1].(string)), nil
}

// regexFind returns the leftmost match, or nil when there is none.
func regexFind(_ context.Context, recv any, args []any) (any, error) {
	s := args[0].(string)
	loc := recv.(*regexp.Regexp).FindStringIndex(s)
	if loc == nil {
		return nil, nil
	}
	return s[loc[0]:loc[1]], nil
}

func regexIndexOf(_ context.Context, recv any, args []any) (any, error) {
	s := args[0].(string)
	loc := recv.(*regexp.Regexp).FindStringIndex(s)
	if loc == nil {
		return -1, nil
	}
	return utf8.RuneCountInString(s[:loc[0]]), nil
}
