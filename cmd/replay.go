package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/viewkit/internal/config"
	"github.com/bnema/viewkit/internal/demo"
	"github.com/bnema/viewkit/internal/logger"
	"github.com/bnema/viewkit/internal/trace"
	"github.com/bnema/viewkit/internal/ui"
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace>",
	Short: "Feed a recorded trace through a simulated view",
	Long: `Replay the events of a trace recorded with 'viewkit run --record' into a
simulated view configured like the real one, then print what the
application saw.

With --yaml the decoded events are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Bool("yaml", false, "Print the decoded events as YAML")
	replayCmd.Flags().BoolP("verbose", "v", false, "Print every activity while replaying")
}

func runReplay(cmd *cobra.Command, args []string) error {
	events, err := trace.ReadFile(args[0])
	if err != nil {
		return err
	}
	logger.Debugf("Read %d events from %s", len(events), args[0])

	out := cmd.OutOrStdout()
	if asYAML, _ := cmd.Flags().GetBool("yaml"); asYAML {
		return trace.Dump(out, events)
	}

	var opts []demo.Option
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		opts = append(opts, demo.WithObserver(func(a demo.Activity) {
			fmt.Fprintln(out, ui.PlainActivityLine(a))
		}))
	}

	stats, err := demo.Replay(cmd.Context(), events, config.Get().View, opts...)
	if err != nil {
		return err
	}
	printStats(out, stats)
	return nil
}
