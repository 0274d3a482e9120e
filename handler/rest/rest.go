package rest

import (
	"errors"
	"net/http"

	"sblend/core"
	"sblend/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	ledgerSrv core.ILedgerService,
	liquidationSrv core.ILiquidationService,
	loanStore core.ILoanStore,
	blockSrv core.IBlockService,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Post("/loans", createLoanHandler(ledgerSrv))
	router.Get("/loans", listLoansHandler(loanStore))
	router.Get("/loans/{id}", findLoanHandler(loanStore))
	router.Post("/loans/{id}/collateral", addCollateralHandler(ledgerSrv))
	router.Post("/loans/{id}/repay", repayHandler(ledgerSrv))
	router.Post("/loans/{id}/liquidate", liquidateHandler(liquidationSrv))
	router.Get("/loans/{id}/interest", interestHandler(ledgerSrv))
	router.Get("/loans/{id}/health", healthHandler(ledgerSrv))
	router.Get("/loans/{id}/receipt", receiptHandler(ledgerSrv))
	router.Get("/loans/underwater", underwaterHandler(liquidationSrv))
	router.Get("/stats", statsHandler(ledgerSrv))
	router.Get("/time", timeHandler(blockSrv))

	return router
}
