package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"weddinginvite/internal/config"
	"weddinginvite/internal/rsvp"
	"weddinginvite/internal/utils"
)

var confetti = []string{
	"🎉  ✨  🎊  ✨  🎉",
	"  ✨  🎊  💍  🎊  ✨",
}

// terminalCelebrator queues bursts for the command goroutine, which owns
// the terminal. Bursts may arrive from a timer goroutine.
type terminalCelebrator struct {
	bursts chan int
}

func newTerminalCelebrator() *terminalCelebrator {
	return &terminalCelebrator{bursts: make(chan int, len(confetti))}
}

func (c *terminalCelebrator) Burst(n int) {
	select {
	case c.bursts <- n:
	default:
	}
}

// play prints queued bursts until the last one or until wait runs out.
func (c *terminalCelebrator) play(out io.Writer, wait time.Duration) {
	timeout := time.After(wait)
	for {
		select {
		case n := <-c.bursts:
			if n >= 0 && n < len(confetti) {
				fmt.Fprintln(out, warnFmt(confetti[n]))
			}
			if n >= len(confetti)-1 {
				return
			}
		case <-timeout:
			return
		}
	}
}

func newConfirmCmd(opts *options) *cobra.Command {
	var (
		mode   string
		dryRun bool
	)

	c := &cobra.Command{
		Use:   "confirm <code>",
		Short: "Confirm attendance with an invitation code",
		Long: `Confirm attendance with the code printed on the invitation. The code is
upper-cased and stripped of whitespace before it is sent.`,
		Example: `  invitectl confirm MARIA01
  invitectl confirm "mar ia 01" --endpoint https://script.google.com/macros/s/XXX/exec
  invitectl confirm MARIA01 -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.RSVP.Mode = mode
				if err := config.Validate(cfg); err != nil {
					return err
				}
			}

			gateway := utils.NewConfirmClientWithOptions(
				cfg.RSVP.Endpoint,
				cfg.RSVP.Mode,
				cfg.RSVPTimeout(),
				cfg.RSVP.DryRun || dryRun,
				nil,
			)

			out := cmd.OutOrStdout()
			text := opts.outputFormat == "text" || opts.outputFormat == ""

			var clientOpts []rsvp.Option
			clientOpts = append(clientOpts, rsvp.WithBurstDelay(cfg.BurstDelay()))
			cel := newTerminalCelebrator()
			if text {
				clientOpts = append(clientOpts, rsvp.WithCelebrator(cel))
			}
			client := rsvp.NewClient(gateway, clientOpts...)

			// a code may be passed as several words
			outcome, err := client.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if handled, err := opts.formatOutput(out, outcome); handled || err != nil {
				if err != nil {
					return err
				}
				return outcomeError(outcome)
			}

			switch outcome.State {
			case rsvp.StateSuccess:
				fmt.Fprintln(out, okFmt(outcome.Message))
				cel.play(out, cfg.BurstDelay()+time.Second)
			case rsvp.StateDomainError:
				fmt.Fprintln(out, warnFmt(outcome.Message))
			default:
				fmt.Fprintln(out, errFmt(outcome.Message))
			}
			return outcomeError(outcome)
		},
	}

	c.Flags().StringVar(&mode, "mode", "", "Endpoint mode: jsonp or json (overrides config)")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Do not call the endpoint; pretend the code is valid")
	return c
}

// outcomeError turns a failed outcome into the command's exit status.
func outcomeError(o rsvp.Outcome) error {
	switch o.State {
	case rsvp.StateSuccess:
		return nil
	case rsvp.StateDomainError:
		return fmt.Errorf("confirmation rejected: %s", o.ErrorCode)
	default:
		return fmt.Errorf("confirmation failed: endpoint unreachable")
	}
}
