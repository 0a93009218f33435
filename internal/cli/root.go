package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pablor21/typegen"
	"github.com/pablor21/typegen/logger"
	"github.com/pablor21/typegen/scanner"
)

const (
	appName    = "typegen"
	appVersion = "0.1.0"
)

// app is the state shared by the subcommands
type app struct {
	configPath string
	packages   []string
	logLevel   string

	cfg *typegen.Config
	log logger.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Describe generic types and generate random instances of them",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml, .toml or .json)")
	cmd.PersistentFlags().StringArrayVarP(&a.packages, "pkg", "p", nil, "Go package pattern to scan, may be repeated")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error or none")
	_ = cmd.MarkPersistentFlagFilename("config", "yaml", "yml", "toml", "json")

	cmd.AddCommand(newDescribeCmd(a), newInferCmd(a), newGenerateCmd(a))
	return cmd
}

// setup loads the configuration, configures logging and scans the configured
// packages so that their classes can be named in type expressions
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = typegen.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
	} else {
		a.cfg = typegen.NewDefaultConfig()
	}
	if cmd.Flags().Changed("pkg") {
		a.cfg.Packages = a.packages
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = logger.ParseLogLevel(a.logLevel)
	}

	logger.SetupLoggerWithWriter(a.cfg.LogLevel, cmd.ErrOrStderr())
	logger.SetLogTag("CLI")
	a.log = logger.NewDefaultLogger()

	if len(a.cfg.Packages) == 0 {
		return nil
	}
	ctx := scanner.NewScanningContext(cmd.Context(), a.cfg.ScannerConfig())
	ret, err := scanner.NewScanner().Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	a.log.Debug(fmt.Sprintf("%d classes available from %v", len(ret.Classes), ret.Packages))
	return nil
}
