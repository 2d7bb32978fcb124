package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidahq/aida/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull completed items from Todoist",
	Long: `Pull completed Todoist items since the last sync and record each new one
as a journal entry. The import is idempotent: items already imported are
skipped, so rerunning after a partial failure is always safe.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := todoistClient()
		if client == nil {
			return handleErrorMsg(ErrNotConfigured,
				"todoist is not configured",
				"Set the Todoist API token in the config file.")
		}

		st, err := store.Open(databasePath())
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		result, err := client.Sync(cmd.Context(), st)
		if err != nil {
			return handleError(ErrSyncFailed, err, "Check the network and the API token.")
		}

		logger.Info().
			Int64("imported", result.Imported).
			Int64("skipped", result.Skipped).
			Msg("todoist sync complete")

		if isJSONOutput() {
			outputSuccess(result, nil)
			return nil
		}
		fmt.Printf("Imported %d item(s), skipped %d already synced.\n",
			result.Imported, result.Skipped)
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sync watermark and import count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(databasePath())
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		defer st.Close()

		status, err := st.GetSyncStatus(cmd.Context())
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(status, nil)
			return nil
		}
		if status.LastSync == nil {
			fmt.Println("Never synced.")
		} else {
			fmt.Printf("Last sync: %s\n", *status.LastSync)
		}
		fmt.Printf("Imported items: %d\n", status.SyncedItems)
		return nil
	},
}

func init() {
	syncCmd.AddCommand(syncStatusCmd)
	rootCmd.AddCommand(syncCmd)
}
