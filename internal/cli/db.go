package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidahq/aida/internal/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the database file",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and schema",
	Long: `Create the database file and apply the schema. Safe to run against an
existing database: the schema script is idempotent and existing data is
never touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := databasePath()
		st, err := store.Open(path)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		logger.Info().Str("path", path).Msg("database initialized")
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path}, nil)
			return nil
		}
		fmt.Printf("Database ready: %s\n", path)
		return nil
	},
}

var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and recreate an empty schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := databasePath()
		st, err := store.ResetDatabase(path)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		logger.Info().Str("path", path).Msg("database reset")
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path, "reset": true}, nil)
			return nil
		}
		fmt.Printf("Database reset: %s\n", path)
		return nil
	},
}

var dbDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the database file",
	Long: `Delete the database file together with its WAL and SHM siblings.
Missing files are not an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := databasePath()
		if err := store.DeleteDatabase(path); err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		logger.Info().Str("path", path).Msg("database deleted")
		if isJSONOutput() {
			outputSuccess(map[string]any{"path": path, "deleted": true}, nil)
			return nil
		}
		fmt.Printf("Database deleted: %s\n", path)
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbCmd.AddCommand(dbResetCmd)
	dbCmd.AddCommand(dbDeleteCmd)
	rootCmd.AddCommand(dbCmd)
}
