package cli

import (
	"github.com/spf13/cobra"

	"vcdbw/internal/report"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var from, to int64

	cmd := &cobra.Command{
		Use:   "summary <vcd_file>",
		Short: "Report the utilization of the whole trace",
		Long: `Integrate the time the tracked signal is asserted over the whole trace
and report up time, down time, start/end time and utilization.

A tile window restricts the integration to [start, end]; it is either a
preset name or "start:end". --from and --to override its bounds.

Examples:
  vcdbw summary sim.vcd
  vcdbw summary --window 1dp_16col sim.vcd
  vcdbw summary --window 54626340:70792964 sim.vcd
  vcdbw summary --no-tail-correction sim.vcd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := opts.config()
			if cmd.Flags().Changed("from") {
				cfg.Window.Start = from
				cfg.Window.Name = ""
			}
			if cmd.Flags().Changed("to") {
				cfg.Window.End = to
				cfg.Window.Name = ""
			}

			res, err := opts.analyzer(cmd, cfg).Summary(path)
			if err != nil {
				return fail(cmd, path, err)
			}

			if opts.json {
				return report.JSON(cmd.OutOrStdout(), res)
			}
			return opts.reporter(cmd).Summary(path, res)
		},
	}

	cmd.Flags().Var(windowValue{w: &opts.cfg.Window}, "window",
		"restrict to a tile window: preset name or start:end")
	cmd.Flags().Int64Var(&from, "from", 0, "window start time")
	cmd.Flags().Int64Var(&to, "to", 0, "window end time (0 means end of trace)")
	return cmd
}
