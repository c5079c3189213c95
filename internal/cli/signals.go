package cli

import (
	"github.com/spf13/cobra"

	"vcdbw/internal/report"
	"vcdbw/internal/trace"
	"vcdbw/internal/vcd"
)

func newSignalsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "signals <vcd_file>",
		Short: "List the signals declared in the dump header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			decls, err := trace.ReadDeclarations(path)
			if err != nil {
				return fail(cmd, path, err)
			}

			tracked := opts.cfg.SignalID
			if opts.cfg.SignalName != "" {
				d, err := vcd.Lookup(decls, opts.cfg.SignalName)
				if err != nil {
					return fail(cmd, path, err)
				}
				tracked = d.ID
			}

			if opts.json {
				return report.JSON(cmd.OutOrStdout(), decls)
			}
			return opts.reporter(cmd).Declarations(path, decls, tracked)
		},
	}
}
