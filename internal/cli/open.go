package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbatch/internal/opener"
	"github.com/MrSnakeDoc/linkbatch/internal/urls"
)

func newOpenCommand(env *Env) *cobra.Command {
	var (
		sel      selection
		throttle bool
		instant  bool
	)

	cmd := &cobra.Command{
		Use:   "open [file]",
		Short: "Open the links in the default browser",
		Long: `open launches every selected link. Batches larger than
LINKBATCH_THROTTLE_THRESHOLD are opened one per LINKBATCH_OPEN_INTERVAL unless
--instant is given. Interrupting a throttled run stops before the next link.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if throttle && instant {
				return errors.New("--throttle and --instant are mutually exclusive")
			}
			_, records, err := sel.load(env, args)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errNoURLs
			}
			targets := urls.Originals(records)

			if !throttle && !instant && opener.ShouldThrottle(len(targets), env.Config.ThrottleThreshold) {
				_, _ = fmt.Fprintf(env.Out, "%d links, opening one every %s (use --instant to skip)\n",
					len(targets), env.Config.OpenInterval)
				throttle = true
			}

			pacer := env.Pacer
			if pacer == nil {
				pacer = opener.NewPacer(env.Config.OpenInterval)
			}
			o := opener.New(env.Launcher, pacer, env.Logger)

			var res opener.Result
			if throttle {
				res = o.Throttled(cmd.Context(), targets)
			} else {
				res = o.Instant(targets)
			}
			return report(env, res)
		},
	}
	sel.bind(cmd)
	cmd.Flags().BoolVar(&throttle, "throttle", false, "Pause between links")
	cmd.Flags().BoolVar(&instant, "instant", false, "Open everything at once")
	return cmd
}

func report(env *Env, res opener.Result) error {
	_, _ = fmt.Fprintf(env.Out, "opened %d of %d links\n", res.Opened, res.Total)
	if res.Aborted {
		return errors.New("interrupted")
	}
	if res.Blocked > 0 {
		return fmt.Errorf("%d links could not be opened", res.Blocked)
	}
	return nil
}
