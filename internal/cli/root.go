package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tcnksm/go-latest"

	"vcdbw/internal/config"
	"vcdbw/internal/model"
	"vcdbw/internal/report"
	"vcdbw/internal/trace"
	"vcdbw/internal/vcd"
)

// rootOptions are the flags shared by every command.
type rootOptions struct {
	cfg     config.Config
	noTail  bool
	json    bool
	verbose bool
	update  bool
}

// config returns the analysis configuration after flag parsing.
func (o *rootOptions) config() config.Config {
	cfg := o.cfg
	cfg.TailCorrection = !o.noTail
	return cfg
}

func (o *rootOptions) analyzer(cmd *cobra.Command, cfg config.Config) *trace.Analyzer {
	a := trace.NewAnalyzer(cfg)
	if o.verbose {
		a.Progress = cmd.ErrOrStderr()
	}
	return a
}

func (o *rootOptions) reporter(cmd *cobra.Command) *report.Reporter {
	rp := report.New(cmd.OutOrStdout())
	rp.Verbose = o.verbose
	return rp
}

// NewRootCommand builds the vcdbw command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "vcdbw",
		Short: "Bus utilization statistics from VCD waveform dumps",
		Long: `vcdbw parses a Value Change Dump written by an RTL simulation and reports
how much of the time a memory request signal is asserted.

The summary command integrates the whole trace (or a tile window); the
tiles command splits the trace into tile executions separated by long
idle gaps and reports the utilization of each.

Examples:
  vcdbw summary sim.vcd                        # Whole-trace utilization
  vcdbw summary --window 16dp_5col sim.vcd     # Restrict to a known tile window
  vcdbw tiles sim.vcd 8                        # Per-tile utilization, expect 8 tiles
  vcdbw tiles --signal-name mem_req sim.vcd.gz # Track a signal by name
  vcdbw signals sim.vcd                        # List declared signals
  vcdbw tui sim.vcd                            # Browse tiles interactively`,
		Version:       model.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.update {
				checkUpdate(cmd.OutOrStdout(), model.Version, true)
				return nil
			}
			return cmd.Help()
		},
	}

	fs := root.PersistentFlags()
	addSignalFlags(fs, &opts.cfg)
	fs.BoolVar(&opts.noTail, "no-tail-correction", false,
		"do not count an interval still open at the end of the trace or tile")
	fs.BoolVarP(&opts.json, "json", "j", false, "output raw analysis data as JSON")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "print progress and detailed statistics")
	fs.BoolVarP(&opts.update, "update", "u", false, "check for the latest release")

	root.AddCommand(
		newSummaryCommand(opts),
		newTilesCommand(opts),
		newSignalsCommand(opts),
		newTUICommand(opts),
	)
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func checkUpdate(w io.Writer, currentVer string, explicit bool) {
	githubTag := &latest.GithubTag{
		Owner:      "pauloohaha",
		Repository: "kerberos-softex",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return // Silently fail
	}

	if res.Outdated {
		fmt.Fprintf(w, "\nA new version is available: %s (you have %s)\n", res.Current, currentVer)
	} else if explicit {
		fmt.Fprintf(w, "You are using the latest version: %s\n", currentVer)
	}
}

// explain prints extra context for errors that point into the dump.
func explain(w io.Writer, path string, err error) {
	var tsErr *vcd.TimestampError
	switch {
	case errors.As(err, &tsErr):
		fmt.Fprintf(w, "%s:%d:\n%s", path, tsErr.Line, model.GetLineContext(path, tsErr.Line))
	case errors.Is(err, vcd.ErrMalformedHeader):
		fmt.Fprintf(w, "%s does not look like a complete VCD dump (truncated or not a VCD file)\n", path)
	case errors.Is(err, vcd.ErrUnknownSignal):
		fmt.Fprintf(w, "run 'vcdbw signals %s' to list the declared signals\n", path)
	}
}

// fail explains err and returns it wrapped with the file it concerns.
func fail(cmd *cobra.Command, path string, err error) error {
	explain(cmd.ErrOrStderr(), path, err)
	return fmt.Errorf("%s: %w", path, err)
}
