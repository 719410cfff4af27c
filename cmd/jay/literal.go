package main

import (
	"strings"

	"jay/internal/value"
)

// parseLiteral reads one command line argument as a value.
func parseLiteral(s string) value.Value {
	switch s {
	case "true":
		return value.TRUE
	case "false":
		return value.FALSE
	case "nil":
		return value.FromOpaque(nil)
	}
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return value.FromText(s[1 : len(s)-1])
	}
	if d, err := value.ParseDecimal(s); err == nil {
		return d
	}
	return value.FromText(s)
}

func parseLiterals(args []string) []value.Value {
	values := make([]value.Value, len(args))
	for i, a := range args {
		values[i] = parseLiteral(a)
	}
	return values
}
