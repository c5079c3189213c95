package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"vcdbw/internal/config"
)

// addSignalFlags registers the flags that select the tracked signal.
func addSignalFlags(fs *pflag.FlagSet, cfg *config.Config) {
	fs.StringVarP(&cfg.SignalID, "signal", "s", cfg.SignalID,
		"identifier (suffix) of the tracked signal in value changes")
	fs.StringVar(&cfg.SignalName, "signal-name", "",
		"track the signal with this $var name (overrides --signal)")
	fs.BoolVar(&cfg.ExactID, "exact", false,
		"match --signal exactly instead of as an identifier suffix")
}

// windowValue is a pflag.Value selecting a tile window either by preset
// name or as "start:end".
type windowValue struct {
	w *config.Window
}

var _ pflag.Value = windowValue{}

func (v windowValue) String() string {
	if v.w == nil || v.w.IsZero() {
		return ""
	}
	if v.w.Name != "" {
		return v.w.Name
	}
	return fmt.Sprintf("%d:%d", v.w.Start, v.w.End)
}

func (v windowValue) Set(s string) error {
	if start, end, ok := strings.Cut(s, ":"); ok {
		w, err := parseRange(start, end)
		if err != nil {
			return err
		}
		*v.w = w
		return nil
	}
	w, err := config.LookupWindow(s)
	if err != nil {
		return err
	}
	*v.w = w
	return nil
}

func (v windowValue) Type() string {
	return "window"
}

func parseRange(start, end string) (config.Window, error) {
	var w config.Window
	var err error
	if start != "" {
		if w.Start, err = strconv.ParseInt(start, 10, 64); err != nil {
			return w, fmt.Errorf("invalid window start %q: %w", start, err)
		}
	}
	if end != "" {
		if w.End, err = strconv.ParseInt(end, 10, 64); err != nil {
			return w, fmt.Errorf("invalid window end %q: %w", end, err)
		}
	}
	return w, nil
}
