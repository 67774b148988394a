package sync

import (
	"fmt"

	"github.com/pylint-tools/pylint-ruff-sync/pkg/shared/files"
)

// validateSyncArgs validates the arguments provided to the sync command.
func validateSyncArgs(options *RunOptionsSync, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("invalid argument(s) received, the sync command takes no positional arguments")
	}

	if options.ConfigFile == "" {
		return fmt.Errorf("the 'config-file' flag must not be empty")
	}

	expandedPath, err := files.ExpandPath(options.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", options.ConfigFile, err)
	}
	if err := files.ValidatePath(expandedPath); err != nil {
		return fmt.Errorf("failed to validate path %q: %w", expandedPath, err)
	}
	options.ConfigFile = expandedPath

	if options.CachePath != "" {
		expandedCache, err := files.ExpandPath(options.CachePath)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", options.CachePath, err)
		}
		options.CachePath = expandedCache
	}

	if options.PylintBinary == "" {
		return fmt.Errorf("the 'pylint-binary' flag must not be empty")
	}

	return nil
}
