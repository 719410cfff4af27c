package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"jay/internal/interop"
	"jay/internal/util/future"
	"jay/internal/value"
)

var errUsage = errors.New("usage")

func execute(ctx context.Context, bridge *interop.Bridge, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	switch command, rest := args[0], args[1:]; command {
	case "call":
		if len(rest) < 2 {
			return fmt.Errorf("%w: call <type> <method> [literal...]", errUsage)
		}
		result, err := bridge.Call(ctx, rest[0], rest[1], parseLiterals(rest[2:])...)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, result.Inspect())
		return err

	case "map":
		if len(rest) < 2 {
			return fmt.Errorf("%w: map <type> <method> [literal...]", errUsage)
		}
		site, err := bridge.Bind(rest[0], rest[1])
		if err != nil {
			return err
		}
		operands := parseLiterals(rest[2:])
		pending := make([]*future.Future[value.Value], len(operands))
		for i, operand := range operands {
			pending[i] = site.InvokeAsync(ctx, operand)
		}
		results, err := future.All(ctx, pending...)
		if err != nil {
			return err
		}
		for _, result := range results {
			if _, err := fmt.Fprintln(out, result.Inspect()); err != nil {
				return err
			}
		}
		return nil

	case "op":
		if len(rest) < 2 || len(rest) > 3 {
			return fmt.Errorf("%w: op <operator> <literal> [literal]", errUsage)
		}
		operands := parseLiterals(rest[1:])
		var result value.Value
		var err error
		if len(operands) == 1 {
			result, err = value.EvalPrefix(rest[0], operands[0])
		} else {
			result, err = value.EvalInfix(rest[0], operands[0], operands[1])
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, result.Inspect())
		return err

	case "types":
		for _, name := range bridge.Types() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}
