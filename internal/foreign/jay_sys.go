package foreign

import (
	"context"
	"os"

	"jay/internal/interop"
)

func sysType() interop.HostType {
	name := interop.String("name")
	return interop.HostType{
		Name: "jay.sys",
		Methods: []interop.Method{
			static("env", sysEnv, name),
			static("setEnv", sysSetEnv, name, interop.String("value")),
		},
	}
}

// sysEnv returns nil when the variable is unset, which differs from set but empty.
func sysEnv(_ context.Context, _ any, args []any) (any, error) {
	if v, ok := os.LookupEnv(args[0].(string)); ok {
		return v, nil
	}
	return nil, nil
}

func sysSetEnv(_ context.Context, _ any, args []any) (any, error) {
	return nil, os.Setenv(args[0].(string), args[1].(string))
}
