package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pylint-tools/pylint-ruff-sync/cmd/sync"
	"github.com/pylint-tools/pylint-ruff-sync/cmd/updatecache"
	"github.com/pylint-tools/pylint-ruff-sync/cmd/version"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/config"
)

var (
	cfgFile   string
	verbose   bool
	AppConfig *config.Config
	rootCmd   = &cobra.Command{
		Use:                   "pylint-ruff-sync [command]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Keeps a pylint configuration in step with ruff's implemented rules.",
		Long: `pylint-ruff-sync reconciles a project's pylint configuration with the set
of rules ruff already implements, so pylint only runs the checks nothing
faster covers. It surgically rewrites the enable/disable arrays of
[tool.pylint.messages_control] in pyproject.toml and removes inline pylint
suppressions that the new configuration makes useless.`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default is .pylint-ruff-sync.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level, overriding the configured level")
	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(updatecache.UpdateCacheCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return 1
	}
	return 0
}

func initConfig() {
	var err error

	if cfgFile == "" {
		cfgFile = ".pylint-ruff-sync.yml"
	}
	AppConfig, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	if err := config.ValidateConfig(AppConfig); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if verbose {
		AppConfig.Logger.Level = "debug"
	}

	sync.Init(AppConfig)
	updatecache.Init(AppConfig)
}
