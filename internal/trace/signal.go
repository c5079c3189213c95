package trace

import (
	"vcdbw/internal/config"
	"vcdbw/internal/vcd"
)

// ResolveSignal builds the tracked signal for cfg. When a signal name is
// configured, the dump header at path is read to find its identifier code,
// which is then matched exactly.
func ResolveSignal(cfg config.Config, path string) (vcd.Signal, error) {
	if cfg.SignalName == "" {
		return cfg.Signal(), nil
	}

	decls, err := ReadDeclarations(path)
	if err != nil {
		return nil, err
	}
	decl, err := vcd.Lookup(decls, cfg.SignalName)
	if err != nil {
		return nil, err
	}
	return vcd.IdentifierSignal{ID: decl.ID}, nil
}
