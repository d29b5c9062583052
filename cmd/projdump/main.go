package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/projdump/internal/cliconfig"
	"github.com/bft-labs/projdump/pkg/document"
	"github.com/bft-labs/projdump/pkg/log"
	"github.com/bft-labs/projdump/pkg/projdump"
)

const longHelp = `Gather every text file of a project into one Markdown document.

projdump walks the tree depth-first, skips ignored directories (node_modules,
.git and __pycache__ by default), leaves out files that are not valid UTF-8
and writes one "## path" section with a fenced code block per file.

Configuration is read from $HOME/.projdump/config.toml (or --config, TOML or
YAML), then PROJDUMP_* environment variables, then flags; flags win.`

var exampleUsage = strings.TrimSpace(`
  projdump
  projdump --root ./backend --output backend.md --ignore node_modules,.git,dist
  projdump --watch
  projdump --check
  projdump sections project_contents.md
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// completionPrinter reports finished runs on stdout.
type completionPrinter struct {
	out    io.Writer
	output string
}

func (p completionPrinter) OnDumpComplete(projdump.Stats) {
	color.New(color.FgGreen).Fprintf(p.out, "All text files have been gathered into '%s'.\n", p.output)
}

func (p completionPrinter) OnDumpError(error) {}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	root := &cobra.Command{
		Use:           "projdump",
		Short:         "Gather every text file of a project into one Markdown document",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "projdump:", err)
				return err
			}

			logger, err := log.NewConsoleLogger(cfg.LogLevel, cfg.NoColor)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "projdump:", err)
				return err
			}
			if cfg.NoColor {
				color.NoColor = true
			}

			logger.Debug("configuration",
				log.String("root", cfg.Root),
				log.String("output", cfg.Output),
				log.Strings("ignore", cfg.IgnoreDirs),
				log.Bool("watch", cfg.Watch),
				log.Bool("check", cfg.Check),
			)

			if err := run(cmd, cfg, logger); err != nil {
				logger.Error("projdump", log.Err(err))
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.projdump/config.toml)")
	root.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "output document path")
	root.Flags().StringVar(&cfg.Root, "root", cfg.Root, "directory to gather files from")
	root.Flags().StringSliceVar(&cfg.IgnoreDirs, "ignore", cfg.IgnoreDirs, "directory names never descended into")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "regenerate the document whenever files change")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period after a change before regenerating (watch mode)")
	root.Flags().BoolVar(&cfg.Check, "check", cfg.Check, "report whether the document is up to date without writing it")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")

	root.AddCommand(newSectionsCommand(&cfg, &cfgPath))
	return root
}

// loadConfig layers the config file and environment under explicitly set
// flags, then validates the result.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	if err := layerConfig(cmd, cfg, cfgPath); err != nil {
		return err
	}
	return cfg.Validate()
}

func layerConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && (cfgPath != "" || cliconfig.FileExists(cfgFile)) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	return cliconfig.ApplyEnvConfig(cfg, changed)
}

func run(cmd *cobra.Command, cfg cliconfig.Config, logger log.Logger) error {
	out := cmd.OutOrStdout()

	d, err := projdump.New(projdump.Config{
		Root:       cfg.Root,
		Output:     cfg.Output,
		IgnoreDirs: append([]string{}, cfg.IgnoreDirs...),
		Debounce:   cfg.Debounce,
	},
		projdump.WithLogger(logger),
		projdump.WithEventHandler(completionPrinter{out: out, output: cfg.Output}),
	)
	if err != nil {
		return err
	}

	switch {
	case cfg.Check:
		if err := d.Check(out); err != nil {
			if errors.Is(err, projdump.ErrDrift) {
				color.New(color.FgYellow).Fprintf(out, "'%s' is out of date.\n", cfg.Output)
			}
			return err
		}
		fmt.Fprintf(out, "'%s' is up to date.\n", cfg.Output)
		return nil

	case cfg.Watch:
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		err := d.Watch(ctx)
		if errors.Is(err, context.Canceled) {
			logger.Info("received signal, stopping...")
			return nil
		}
		return err

	default:
		_, err := d.Dump()
		return err
	}
}

func newSectionsCommand(cfg *cliconfig.Config, cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sections [FILE]",
		Short: "List the file sections of an existing document",
		Long: "Parse a projdump document and print the relative path of every section, one per line.\n" +
			"FILE defaults to the configured output document.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := layerConfig(cmd, cfg, *cfgPath); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "projdump:", err)
				return err
			}
			path := cfg.Output
			if len(args) == 1 {
				path = args[0]
			}
			src, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "projdump:", err)
				return err
			}
			paths, err := document.Sections(src)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "projdump:", err)
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}
