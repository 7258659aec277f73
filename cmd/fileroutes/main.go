package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	envFile    string
	verbose    bool
	noColor    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		errors.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "fileroutes",
		Short: "Generate client route trees from view files",
		Long: `fileroutes derives a declarative route tree from the files of a
views directory and writes it as a JSON document for a client-side router.

  • [name] directories and files become required parameters
  • [[name]] becomes an optional parameter, [...name] a wildcard
  • layout.go and same-named files merge into one route
  • Title constants become route titles`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Path to "+config.ConfigFileName+" (default: nearest to the working directory)")
	rootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Environment file to load")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		genCmd(flags),
		treeCmd(flags),
		scanCmd(flags),
		devCmd(flags),
		publishCmd(flags),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the environment file and installs the default logger.
func (f *globalFlags) setup(stderr io.Writer) error {
	if f.envFile != "" {
		if err := godotenv.Load(f.envFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return errors.Newf(errors.CategoryCLI, "loading %s: %v", f.envFile, err)
		}
	}

	if f.noColor {
		noColor = true
		errors.DisableColors()
	}

	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    f.noColor,
	})))
	return nil
}

// loadConfig loads, overrides from the environment and validates the project
// configuration.
func (f *globalFlags) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.LoadFromWorkingDir()
	}
	if err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", colorize("\033[32m", "✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", colorize("\033[33m", "⚠"), fmt.Sprintf(format, args...))
}

// noColor disables ANSI colors in the message helpers.
var noColor bool

func colorize(code, text string) string {
	if noColor {
		return text
	}
	return code + text + "\033[0m"
}
