package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-footnotes/pkg/config"
)

type initOptions struct {
	force    bool
	defaults bool
}

func newInitCommand(global *globalOptions) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file",
		Long: `Create a configuration file by answering a few questions.

Examples:
  footnotes init
  footnotes init --yes --config site/footnotes.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := global.configPath
			if _, err := os.Stat(path); err == nil && !opts.force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			if !opts.defaults {
				if global.prompter == nil {
					return errors.New("no prompter available; use --yes")
				}
				if err := askConfig(global.prompter, &cfg); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Write(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVarP(&opts.defaults, "yes", "y", false, "write the defaults without prompting")
	return cmd
}

func askConfig(p Prompter, cfg *config.File) error {
	questions := []struct {
		prompt InputPrompt
		target *string
	}{
		{InputPrompt{Message: "Footnote list title:", Default: cfg.Footnotes.Title, Validator: required}, &cfg.Footnotes.Title},
		{InputPrompt{Message: "Title element id:", Default: cfg.Footnotes.TitleID, Validator: elementID}, &cfg.Footnotes.TitleID},
		{InputPrompt{Message: "Base CSS class:", Default: cfg.Footnotes.BaseClass, Validator: required}, &cfg.Footnotes.BaseClass},
		{InputPrompt{
			Message: "Back-link label:",
			Default: "Back to reference {n}",
			Help:    "{n} is the 1-based position, {index} the footnote number, {id} the footnote id",
		}, &cfg.Footnotes.BackLinkLabel},
		{InputPrompt{Message: "Content directory:", Default: cfg.Build.Content, Validator: required}, &cfg.Build.Content},
		{InputPrompt{Message: "Output directory:", Default: cfg.Build.Output, Validator: required}, &cfg.Build.Output},
	}
	for _, q := range questions {
		answer, err := p.Input(q.prompt)
		if err != nil {
			return err
		}
		*q.target = strings.TrimSpace(answer)
	}

	sanitize, err := p.Confirm("Sanitize footnote descriptions?", true)
	if err != nil {
		return err
	}
	cfg.Footnotes.Sanitize = sanitize
	return nil
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func elementID(s string) error {
	if err := required(s); err != nil {
		return err
	}
	if strings.ContainsAny(s, " \t\n\"") {
		return errors.New("must not contain whitespace or quotes")
	}
	return nil
}
