package updatecache

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pylint-tools/pylint-ruff-sync/internal/cache"
	"github.com/pylint-tools/pylint-ruff-sync/internal/pylint"
	"github.com/pylint-tools/pylint-ruff-sync/internal/ruff"
	"github.com/pylint-tools/pylint-ruff-sync/internal/syncer"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/config"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/files"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/httpclient"
	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/logger"
)

// RunOptionsUpdateCache holds the arguments for the update-cache command.
type RunOptionsUpdateCache struct {
	CachePath    string
	PylintBinary string
}

var (
	AppConfig          *config.Config
	updateCacheOptions RunOptionsUpdateCache
)

var UpdateCacheCmd = &cobra.Command{
	Use:                   "update-cache [--cache-path PATH]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Short:                 "Refreshes the local cache of rules ruff implements",
	Long: `Fetches the current ruff implementation status from its tracking issue and
replaces the local cache file with it, without touching any project
configuration. The cache is what sync falls back to when the live fetch
fails.`,
	RunE: runUpdateCacheCommand,
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// runUpdateCacheCommand executes the update-cache command.
func runUpdateCacheCommand(cmd *cobra.Command, args []string) error {
	log := logger.NewLogger(AppConfig, "core-update-cache")

	if len(args) != 0 {
		err := fmt.Errorf("invalid argument(s) received, the update-cache command takes no positional arguments")
		log.Error("invalid update-cache arguments", "error", err)
		return err
	}

	cachePath := updateCacheOptions.CachePath
	if cachePath == "" {
		var err error
		if cachePath, err = cache.DefaultPath(); err != nil {
			log.Error("failed to resolve cache path", "error", err)
			return err
		}
	} else {
		expanded, err := files.ExpandPath(cachePath)
		if err != nil {
			log.Error("failed to expand cache path", "error", err)
			return err
		}
		cachePath = expanded
	}

	restyClient := httpclient.NewRestyClient(log, AppConfig)
	s := syncer.New(
		log,
		pylint.NewLister(log, updateCacheOptions.PylintBinary),
		ruff.NewExtractor(log, restyClient),
		nil, nil,
		cache.NewManager(log, cachePath),
		nil,
		syncer.Options{},
	)

	result, err := s.UpdateCache(cmd.Context())
	if err != nil {
		log.Error("update-cache command failed", "error", err)
		return err
	}

	fmt.Printf("Cache written to %s\n", result.Path)
	fmt.Printf("Rules tracked: %d, implemented: %d (fetched %s)\n",
		result.Total, result.Implemented, result.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	if len(result.Added) > 0 {
		fmt.Printf("Newly implemented: %s\n", strings.Join(result.Added, ", "))
	}
	if len(result.Removed) > 0 {
		fmt.Printf("No longer implemented: %s\n", strings.Join(result.Removed, ", "))
	}

	log.Info("update-cache command completed successfully")
	return nil
}

func init() {
	UpdateCacheCmd.Flags().StringVar(&updateCacheOptions.CachePath, "cache-path", "", "Path of the implemented-rules cache file (default: XDG cache directory).")
	UpdateCacheCmd.Flags().StringVar(&updateCacheOptions.PylintBinary, "pylint-binary", "pylint", "Pylint executable to invoke.")
	UpdateCacheCmd.Flags().BoolP("help", "h", false, "Show help for the update-cache command.")
}
