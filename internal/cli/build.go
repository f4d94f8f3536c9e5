package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-footnotes/pkg/config"
	"github.com/goliatone/go-footnotes/pkg/site"
)

type buildOptions struct {
	content     string
	output      string
	concurrency int
	strict      bool
}

func newBuildCommand(global *globalOptions) *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every page in the content directory",
		Long: `Render every page template in the content directory into the output
directory. Files and directories starting with an underscore are treated as
layouts and partials.

Examples:
  footnotes build
  footnotes build --content docs --output site
  footnotes build --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, global.configPath)
			if err != nil {
				return err
			}
			if opts.content != "" {
				cfg.Build.Content = opts.content
			}
			if opts.output != "" {
				cfg.Build.Output = opts.output
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.Build.Concurrency = opts.concurrency
			}

			builder, err := site.New(
				site.WithContentDir(cfg.Build.Content),
				site.WithOutputDir(cfg.Build.Output),
				site.WithExtension(cfg.Build.Extension),
				site.WithConcurrency(cfg.Build.Concurrency),
				site.WithData(cfg.Build.Data),
				site.WithFootnoteOptions(cfg.Footnotes.Options()...),
				site.WithThemeManifest(cfg.Theme.Manifest(), cfg.Theme.Variant),
				site.WithLogger(global.logger),
			)
			if err != nil {
				return err
			}

			report, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			diagnostics := report.Diagnostics()
			fmt.Fprintf(cmd.OutOrStdout(), "built %d page(s) into %s (%d diagnostic(s))\n",
				len(report.Pages), cfg.Build.Output, len(diagnostics))
			if opts.strict && len(diagnostics) > 0 {
				return fmt.Errorf("build reported %d footnote diagnostic(s)", len(diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "content directory (overrides the config file)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (overrides the config file)")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "pages rendered in parallel (0 uses all CPUs)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any footnote diagnostic is reported")
	return cmd
}

// loadConfig falls back to defaults only when the default config file is
// absent; an explicit --config must exist.
func loadConfig(cmd *cobra.Command, path string) (config.File, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config") {
		return config.Default(), nil
	}
	return config.File{}, err
}
