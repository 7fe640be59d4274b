package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// knownConfigKeys are the settings docdex reads, shown by
// "config show" whether or not they are set.
var knownConfigKeys = []string{
	"corpus.root",
	"corpus.extensions",
	"chunk.max_length",
	"chunk.overlap",
	"search.default_limit",
	"search.heading_boost",
	"search.position_weight",
	"search.snippet_length",
	"storage.backend",
	"storage.data_dir",
	"mcp.enabled",
	"mcp.port",
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage docdex settings",
	Long: `View and change settings stored in the docdex config file.

Values set here take effect on the next command invocation.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print a single setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Sets a configuration value. Integers, floats and booleans are
detected from the value text; everything else is stored as a string.
Comma-separated values for corpus.extensions become a list.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	for _, key := range knownConfigKeys {
		value, ok := configStore.Get(key)
		if !ok {
			cmd.Printf("  %-24s (not set)\n", key)
			continue
		}
		cmd.Printf("  %-24s %v\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	value, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key not set: %s", args[0])
	}
	cmd.Printf("%v\n", value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key, raw := args[0], args[1]
	if err := configStore.Set(key, parseConfigValue(key, raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

// parseConfigValue coerces the raw flag text into the natural TOML
// type so typed getters keep working.
func parseConfigValue(key, raw string) any {
	if key == "corpus.extensions" {
		parts := strings.Split(raw, ",")
		exts := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				exts = append(exts, p)
			}
		}
		return exts
	}
	if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseBool(raw); err == nil {
		return v
	}
	return raw
}
