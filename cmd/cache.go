package cmd

import (
	"fmt"

	"github.com/bgraf/trackposter/building"
	"github.com/spf13/cobra"
)

// cacheCmd groups cache maintenance commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Maintain the track cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cache directory",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	opts := building.OptionsFromConfig()
	if opts.CacheDirectory == "" {
		return fmt.Errorf("no cache directory configured")
	}

	return building.NewTrackLoader(opts).ClearCache()
}
