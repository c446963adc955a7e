package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blackcoderx/reqport/pkg/config"
	"github.com/blackcoderx/reqport/pkg/tui"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// app carries the state shared by every command.
type app struct {
	cfgFile  string
	root     string
	verbose  bool
	logger   *zap.Logger
	settings config.Config

	// interactive reports whether prompts may be shown.
	interactive func() bool
}

func newApp() *app {
	return &app{
		root:        ".",
		settings:    config.Default(),
		interactive: tui.IsInteractive,
	}
}

// folder returns the .reqport directory of the project.
func (a *app) folder() string {
	return config.Dir(a.root)
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reqport",
		Short: "reqport - export HTTP requests to curl, HTTPie, Postman, Insomnia, fetch and Python",
		Long: `reqport turns saved or inline HTTP requests into the formats other tools speak:
shell commands (curl, HTTPie), collection files (Postman v2.1, Insomnia v4)
and source snippets (JavaScript fetch, Python requests).

Requests live as YAML under .reqport/requests, environments under
.reqport/environments. Run "reqport init" to create the folder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .reqport/config.json)")
	rootCmd.PersistentFlags().StringVarP(&a.root, "dir", "C", ".", "project directory")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(
		newExportCmd(a),
		newListCmd(a),
		newEnvsCmd(a),
		newTargetsCmd(a),
		newImportCmd(a),
		newInitCmd(a),
		newUpdateCmd(a),
	)
	return rootCmd
}

// setup loads .env, builds the logger and reads the configuration.
func (a *app) setup(stderr io.Writer) error {
	// Load .env file if it exists (optional, warn if malformed)
	if err := godotenv.Load(filepath.Join(a.root, ".env")); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(stderr, "Warning: Failed to load .env file: %v\n", err)
	}

	if a.logger == nil {
		logCfg := zap.NewProductionConfig()
		logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if a.verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}

	cfgPath := a.cfgFile
	if cfgPath == "" {
		cfgPath = config.ConfigPath(a.root)
	}
	v, err := config.NewViper(cfgPath)
	if err != nil {
		return err
	}
	settings, err := config.Load(v)
	if err != nil {
		return err
	}
	a.settings = settings

	a.logger.Debug("configuration loaded",
		zap.String("path", cfgPath),
		zap.String("default_target", settings.DefaultTarget),
		zap.String("output_dir", settings.OutputDir),
	)
	return nil
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.Failure(err))
		os.Exit(1)
	}
}
