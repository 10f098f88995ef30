package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"weddinginvite/internal/countdown"
	"weddinginvite/internal/models"
)

const msgDone = "¡Llegó el gran día!"

func newCountdownCmd(opts *options) *cobra.Command {
	var (
		once   bool
		target string
	)

	c := &cobra.Command{
		Use:   "countdown",
		Short: "Show the time left until the ceremony",
		Long: `Show the time left until the ceremony, refreshed on every tick until
the target moment is reached or the command is interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if target != "" {
				cfg.Wedding.Target = target
			}
			at, err := cfg.TargetTime()
			if err != nil {
				return err
			}

			engine, err := countdown.New(at, countdown.WithInterval(cfg.TickInterval()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if once {
				return printSnapshot(opts, out, at, engine.Snapshot(), false)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCountdown(ctx, opts, out, engine)
		},
	}

	c.Flags().BoolVar(&once, "once", false, "Print a single snapshot and exit")
	c.Flags().StringVar(&target, "target", "", "Target moment, RFC3339 (overrides config)")
	return c
}

// runCountdown prints a line per whole second until done or ctx ends.
func runCountdown(ctx context.Context, opts *options, out io.Writer, engine *countdown.Engine) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticks := engine.Stream(ctx)
	live := opts.outputFormat == "text" || opts.outputFormat == ""

	var last countdown.Snapshot
	first := true
	for s := range ticks {
		if !first && s == last {
			continue
		}
		first, last = false, s

		if err := printSnapshot(opts, out, engine.Target(), s, live); err != nil {
			return err
		}
		if s.Done {
			break
		}
	}

	cancel()
	for range ticks {
	}
	if live {
		fmt.Fprintln(out)
	}
	return nil
}

func printSnapshot(opts *options, out io.Writer, target time.Time, s countdown.Snapshot, live bool) error {
	handled, err := opts.formatOutput(out, models.NewCountdownResponse(target.Format(time.RFC3339), s))
	if handled || err != nil {
		return err
	}

	prefix, suffix := "", "\n"
	if live {
		// redraw in place
		prefix, suffix = "\r\033[K", ""
	}

	if s.Done {
		_, err = fmt.Fprint(out, prefix+okFmt(msgDone)+suffix)
		return err
	}
	d := s.Display()
	_, err = fmt.Fprintf(out, "%s%s %s  %s:%s:%s %s%s",
		prefix,
		digitFmt(d.Days), dimFmt("días"),
		digitFmt(d.Hours), digitFmt(d.Minutes), digitFmt(d.Seconds),
		dimFmt("(hh:mm:ss)"),
		suffix,
	)
	return err
}
