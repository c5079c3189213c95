package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"vcdbw/internal/model"
	"vcdbw/internal/report"
)

func newTilesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tiles <vcd_file> [expected_tiles]",
		Short: "Split the trace into tiles and report per-tile utilization",
		Long: `Split the trace into tile executions separated by idle gaps longer than
the gap threshold, then report the utilization of each tile, of all
active tiles together, and of the whole span including the gaps.

The expected tile count only drives a warning; the detected tiles are
always reported.

Examples:
  vcdbw tiles sim.vcd
  vcdbw tiles sim.vcd 16
  vcdbw tiles --gap-threshold 500000 sim.vcd`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := opts.config()
			if len(args) == 2 {
				n, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid expected tile count %q: %w", args[1], err)
				}
				cfg.ExpectedTiles = n
			}

			rep, err := opts.analyzer(cmd, cfg).Tiles(path)
			if err != nil {
				return fail(cmd, path, err)
			}

			if opts.json {
				for _, w := range rep.Warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s Warning: %s\n", model.IconWarning, w)
				}
				return report.JSON(cmd.OutOrStdout(), rep)
			}
			return opts.reporter(cmd).Tiles(path, rep)
		},
	}

	cmd.Flags().Int64Var(&opts.cfg.GapThreshold, "gap-threshold", opts.cfg.GapThreshold,
		"idle time that separates two tiles")
	cmd.Flags().IntVarP(&opts.cfg.ExpectedTiles, "tiles", "t", opts.cfg.ExpectedTiles,
		"expected number of tiles (only used for a warning)")
	return cmd
}
