package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/flightdeck-dev/flightdeck/internal/config"
	"github.com/flightdeck-dev/flightdeck/pkg/log"
	"github.com/flightdeck-dev/flightdeck/pkg/version"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flightdeck",
	Short: "Flightdeck - iOS release pipeline tooling",
	Long: `Flightdeck scaffolds and drives an iOS CI/CD release pipeline:
it renders the signing and lane configuration for a project, checks
that the secrets the deploy stage needs are in place, and runs the
two-stage pipeline (test on pull requests, deploy on pushes to the
default branch).`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			cmd.Help()
			return
		}
	},
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). The context cancels
// in-flight pipeline runs at the next step boundary.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./flightdeck.yaml or $HOME/.flightdeck/flightdeck.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	viper.SetEnvPrefix("FLIGHTDECK")
	viper.AutomaticEnv()
}

// loadConfig reads the effective configuration for a command.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// initLogging sets the default logger level and format from config and
// flags.
func initLogging() {
	cfg, err := loadConfig()
	if err != nil {
		return
	}

	level := log.ParseLevel(cfg.Log.Level)
	if verbose {
		level = log.DebugLevel
	}

	var formatter log.Formatter = log.NewTextFormatter()
	if cfg.Log.Format == "json" {
		formatter = &log.JSONFormatter{}
	}

	log.SetDefaultLogger(log.NewLogger(
		log.WithLevel(level),
		log.WithFormatter(formatter),
	))
}
