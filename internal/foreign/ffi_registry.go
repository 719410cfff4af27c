package foreign

import (
	"log/slog"

	"jay/internal/interop"
	"jay/internal/util"
)

// HostTypes returns every host type the runtime ships, configured from cfg.
func HostTypes(cfg util.Configuration) []interop.HostType {
	return []interop.HostType{
		mathType(),
		stringType(),
		regexType(),
		timeType(),
		cryptoType(),
		fsType(),
		sysType(),
		sqlType(cfg.Interop.SQLMaxOpenConns),
	}
}

// Register publishes the host types not disabled in cfg on b.
func Register(b *interop.Bridge, cfg util.Configuration) error {
	for _, t := range HostTypes(cfg) {
		if cfg.IsDisabled(t.Name) {
			slog.Debug("host type disabled", slog.String("type", t.Name))
			continue
		}
		if err := b.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func static(name string, fn interop.Func, params ...interop.Param) interop.Method {
	return interop.Method{Name: name, Params: params, Fn: fn}
}

func instance(name string, recv interop.Param, fn interop.Func, params ...interop.Param) interop.Method {
	return interop.Method{Name: name, Receiver: &recv, Params: params, Fn: fn}
}
