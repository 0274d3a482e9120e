package cmd

import (
	"sblend/pkg/concurrency"
	"sblend/worker"
	"sblend/worker/events"
	"sblend/worker/liquidator"
	"sblend/worker/priceoracle"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "sblend job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		locks := concurrency.NewKeyedLock()
		loanStore := provideLoanStore(database)
		stateStore := provideStateStore(database)
		eventStore := provideEventStore(database)
		propertyStore := providePropertyStore(database)

		blockService := provideBlockService()
		priceService := providePriceService()
		ledgerService := provideLedgerService(database, loanStore, stateStore, eventStore, locks)
		liquidationService := provideLiquidationService(database, loanStore, stateStore, eventStore, locks)

		workers := []worker.Worker{
			priceoracle.New(provideConfig(), ledgerService, priceService, blockService, propertyStore),
			liquidator.New(provideConfig(), liquidationService),
			events.New(provideConfig(), eventStore),
		}

		g, ctx := errgroup.WithContext(ctx)
		for _, w := range workers {
			w := w
			g.Go(func() error {
				return w.Run(ctx)
			})
		}

		if err := g.Wait(); err != nil {
			log.WithError(err).Errorln("worker aborted")
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
