package cmd

import (
	"encoding/json"
	"os"

	"sblend/pkg/concurrency"

	"github.com/spf13/cobra"
)

// one-shot protocol snapshot, handy for cron and debugging
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "print protocol totals and verify ledger integrity",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		locks := concurrency.NewKeyedLock()
		loanStore := provideLoanStore(database)
		stateStore := provideStateStore(database)
		eventStore := provideEventStore(database)

		ledgerService := provideLedgerService(database, loanStore, stateStore, eventStore, locks)

		stats, err := ledgerService.Stats(ctx)
		if err != nil {
			return err
		}

		verify, _ := cmd.Flags().GetBool("verify")
		if verify {
			if err := ledgerService.VerifyIntegrity(ctx); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().Bool("verify", false, "audit totals against a full loan scan")
}
