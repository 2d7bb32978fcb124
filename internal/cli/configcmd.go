package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidahq/aida/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Write a commented config template to the default location. An existing
file is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault()
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		logger.Info().Str("path", path).Msg("config initialized")
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path}, nil)
			return nil
		}
		fmt.Printf("Config ready: %s\n", path)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultPath()
		if configPath != "" {
			path = configPath
		}
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path}, nil)
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
