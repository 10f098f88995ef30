// Package cmd implements the invitectl CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"weddinginvite/internal/config"
)

var (
	// Version is set at build time
	Version = "0.1.0"

	okFmt    = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnFmt  = color.New(color.FgYellow).SprintFunc()
	errFmt   = color.New(color.FgRed).SprintFunc()
	digitFmt = color.New(color.FgHiMagenta, color.Bold).SprintFunc()
	dimFmt   = color.New(color.Faint).SprintFunc()
)

// options holds the global flags.
type options struct {
	configPath   string
	outputFormat string
	endpoint     string
	timeout      time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "invitectl",
		Short: "Wedding invitation countdown and RSVP client",
		Long: `invitectl shows the live countdown to the ceremony and confirms
invitation codes against the guest list endpoint.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default $CONFIG_PATH or config/config.yaml)")
	root.PersistentFlags().StringVarP(&opts.outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	root.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Confirmation endpoint URL (overrides config)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Confirmation timeout (overrides config)")

	root.AddCommand(newCountdownCmd(opts))
	root.AddCommand(newConfirmCmd(opts))
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// load reads the config file and applies flag overrides.
func (o *options) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.endpoint != "" {
		cfg.RSVP.Endpoint = o.endpoint
	}
	if o.timeout > 0 {
		cfg.RSVP.TimeoutMs = int(o.timeout / time.Millisecond)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// formatOutput writes data as json or yaml. It reports false for text
// output, which each command renders itself.
func (o *options) formatOutput(w io.Writer, data interface{}) (bool, error) {
	switch o.outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return true, encoder.Encode(data)
	case "yaml":
		out, err := yaml.Marshal(data)
		if err != nil {
			return true, fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(out)
		return true, err
	case "text", "":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q", o.outputFormat)
	}
}
