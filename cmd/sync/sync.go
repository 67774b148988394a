package sync

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pylint-tools/pylint-ruff-sync/internal/cache"
	"github.com/pylint-tools/pylint-ruff-sync/internal/gitfiles"
	"github.com/pylint-tools/pylint-ruff-sync/internal/pylint"
	"github.com/pylint-tools/pylint-ruff-sync/internal/ruff"
	"github.com/pylint-tools/pylint-ruff-sync/internal/syncer"
	"github.com/pylint-tools/pylint-ruff-sync/internal/tomledit"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/config"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/httpclient"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/logger"
)

// RunOptionsSync holds the arguments for the sync command.
type RunOptionsSync struct {
	ConfigFile     string
	CachePath      string
	DryRun         bool
	KeepOverlap    bool
	SkipCleaner    bool
	CustomEnable   []string
	CustomDisable  []string
	PylintBinary   string
	TomlSortBinary string
}

var (
	AppConfig        *config.Config
	syncOptions      RunOptionsSync
	exampleSyncUsage = `  # Reconcile pyproject.toml in the current directory
  pylint-ruff-sync sync

  # Preview the edit without writing anything
  pylint-ruff-sync sync --dry-run

  # Keep rules even when mypy already covers them
  pylint-ruff-sync sync --keep-mypy-overlap

  # Force specific rules on or off regardless of reconciliation
  pylint-ruff-sync sync --enable W0613,unused-argument --disable C0114`
)

var SyncCmd = &cobra.Command{
	Use:                   "sync [--config-file PATH] [--dry-run] [--enable RULES] [--disable RULES]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleSyncUsage,
	Short:                 "Reconciles the pylint configuration against ruff's implemented rules",
	Long: `Reconciles the pylint configuration against the set of rules ruff already
implements, rewriting only the enable/disable arrays of
[tool.pylint.messages_control] in pyproject.toml. After the edit it removes
inline pylint suppressions that the new configuration makes useless.`,
	RunE: runSyncCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runSyncCommand executes the sync command.
func runSyncCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-sync")

	if err := validateSyncArgs(&syncOptions, args); err != nil {
		log.Error("invalid sync arguments", "error", err)
		return err
	}

	cachePath := syncOptions.CachePath
	if cachePath == "" {
		var err error
		if cachePath, err = cache.DefaultPath(); err != nil {
			log.Error("failed to resolve cache path", "error", err)
			return err
		}
	}

	restyClient := httpclient.NewRestyClient(log, AppConfig)
	s := syncer.New(
		log,
		pylint.NewLister(log, syncOptions.PylintBinary),
		ruff.NewExtractor(log, restyClient),
		pylint.NewDiagnosticsRunner(log, syncOptions.PylintBinary),
		gitfiles.TrackedPython,
		cache.NewManager(log, cachePath),
		tomledit.NewEditor(log, tomledit.DefaultTablePath, tomledit.NewTomlSortFormatter(syncOptions.TomlSortBinary)),
		syncer.Options{
			ConfigFile:    syncOptions.ConfigFile,
			DryRun:        syncOptions.DryRun,
			FilterOverlap: !syncOptions.KeepOverlap,
			RunCleaner:    !syncOptions.SkipCleaner,
			CustomEnable:  syncOptions.CustomEnable,
			CustomDisable: syncOptions.CustomDisable,
		},
	)

	report, err := s.Run(cmd.Context())
	if err != nil {
		log.Error("sync command failed", "error", err)
		return err
	}

	printReport(report, syncOptions.DryRun)
	log.Info("sync command completed successfully")
	return nil
}

// printReport writes the run summary to stdout.
func printReport(report *syncer.Report, dryRun bool) {
	fmt.Printf("Rules in catalog: %d\n", report.CatalogSize)
	fmt.Printf("Implemented by ruff: %d (source: %s)\n", report.ImplementedCount, report.Provenance)
	if report.OverlapCount > 0 {
		fmt.Printf("Covered by mypy: %d\n", report.OverlapCount)
	}
	fmt.Printf("Enabled: %d, disabled: %d\n", report.EnableCount, report.DisableCount)
	for _, ident := range report.UnknownEnable {
		fmt.Printf("Unknown rule preserved in enable: %s\n", ident)
	}
	for _, ident := range report.UnknownDisable {
		fmt.Printf("Unknown rule preserved in disable: %s\n", ident)
	}
	switch {
	case !report.ConfigChanged:
		fmt.Println("Configuration already up to date.")
	case dryRun:
		fmt.Println("Dry run, configuration not written. Pending changes:")
		fmt.Print(report.ConfigDiff)
	default:
		fmt.Println("Configuration updated.")
	}
	for file, lines := range report.CleanedLines {
		if dryRun {
			fmt.Printf("Would clean %d suppression line(s) in %s\n", lines, file)
		} else {
			fmt.Printf("Cleaned %d suppression line(s) in %s\n", lines, file)
		}
	}
}

func init() {
	SyncCmd.Flags().StringVarP(&syncOptions.ConfigFile, "config-file", "f", "pyproject.toml", "Path to the pyproject.toml to reconcile.")
	SyncCmd.Flags().StringVar(&syncOptions.CachePath, "cache-path", "", "Path of the implemented-rules cache file (default: XDG cache directory).")
	SyncCmd.Flags().BoolVarP(&syncOptions.DryRun, "dry-run", "n", false, "Compute and report everything without writing files.")
	SyncCmd.Flags().BoolVar(&syncOptions.KeepOverlap, "keep-mypy-overlap", false, "Do not disable rules whose semantics mypy already covers.")
	SyncCmd.Flags().BoolVar(&syncOptions.SkipCleaner, "skip-cleaner", false, "Skip the inline suppression cleanup pass.")
	SyncCmd.Flags().StringSliceVarP(&syncOptions.CustomEnable, "enable", "e", nil, "Comma-separated rule codes or names to force-enable.")
	SyncCmd.Flags().StringSliceVarP(&syncOptions.CustomDisable, "disable", "d", nil, "Comma-separated rule codes or names to force-disable.")
	SyncCmd.Flags().StringVar(&syncOptions.PylintBinary, "pylint-binary", "pylint", "Pylint executable to invoke.")
	SyncCmd.Flags().StringVar(&syncOptions.TomlSortBinary, "toml-sort-binary", "toml-sort", "toml-sort executable used to format the result.")
	SyncCmd.Flags().BoolP("help", "h", false, "Show help for the sync command.")
}
