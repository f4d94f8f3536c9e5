// Package cli implements the footnotes command line tool.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "footnotes.yaml"

type globalOptions struct {
	configPath string
	logFormat  string
	logLevel   string
	prompter   Prompter
	logger     *slog.Logger
}

// NewRootCommand builds the command tree. Output and logs go to out.
func NewRootCommand(out io.Writer, prompter Prompter) *cobra.Command {
	opts := &globalOptions{prompter: prompter}

	root := &cobra.Command{
		Use:   "footnotes",
		Short: "Render templates with footnote references and lists",
		Long: `footnotes builds a directory of page templates into HTML.

Pages use {% footnoteref "id" "description" %}text{% endfootnoteref %} to
reference footnotes and {% footnotes %} to render the list. References may
appear before their definition; they are resolved once the page is complete.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logFormat, opts.logLevel)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(out)

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", DefaultConfigPath, "path to the configuration file")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(newBuildCommand(opts))
	root.AddCommand(newInitCommand(opts))
	return root
}

// Execute runs the root command against the process streams.
func Execute() {
	if err := NewRootCommand(os.Stdout, SurveyPrompter{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}
	handlerOpts := &slog.HandlerOptions{Level: lvl}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q (expected text or json)", format)
	}
}
