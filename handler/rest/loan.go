package rest

import (
	"net/http"

	"sblend/core"
	"sblend/handler/param"
	"sblend/handler/render"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

func createLoanHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower         string          `json:"borrower"`
			CollateralAmount decimal.Decimal `json:"collateral_amount"`
			BorrowAmount     decimal.Decimal `json:"borrow_amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Borrower == "" {
			render.Code(w, core.ErrOperationForbidden)
			return
		}

		loan, err := ledgerSrv.Borrow(r.Context(), params.Borrower, params.CollateralAmount, params.BorrowAmount)
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, loan)
	}
}

func listLoansHandler(loanStore core.ILoanStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string `json:"borrower"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Borrower == "" {
			loans, err := loanStore.ListActive(r.Context())
			if err != nil {
				render.BadRequest(w, err)
				return
			}
			render.JSON(w, loans)
			return
		}

		loans, err := loanStore.FindByBorrower(r.Context(), params.Borrower)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, loans)
	}
}

func findLoanHandler(loanStore core.ILoanStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loan, err := loanStore.Find(r.Context(), loanID(r))
		if err != nil {
			render.BadRequest(w, err)
			return
		}
		if loan.ID == 0 {
			render.Code(w, core.ErrLoanNotFound)
			return
		}

		render.JSON(w, loan)
	}
}

func addCollateralHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string          `json:"borrower"`
			Amount   decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		total, err := ledgerSrv.AddCollateral(r.Context(), loanID(r), params.Borrower, params.Amount)
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{"loan_id": loanID(r), "collateral_amount": total})
	}
}

func repayHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Borrower string          `json:"borrower"`
			Amount   decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		result, err := ledgerSrv.Repay(r.Context(), loanID(r), params.Borrower, params.Amount)
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, result)
	}
}

func liquidateHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Liquidator string          `json:"liquidator"`
			Amount     decimal.Decimal `json:"amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		receipt, err := liquidationSrv.Liquidate(r.Context(), loanID(r), params.Liquidator, params.Amount)
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, receipt)
	}
}

func interestHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		interest, err := ledgerSrv.CalculateInterest(r.Context(), loanID(r))
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{"loan_id": loanID(r), "interest": interest})
	}
}

func healthHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hf, err := ledgerSrv.HealthFactor(r.Context(), loanID(r))
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{"loan_id": loanID(r), "health_factor": hf})
	}
}

func receiptHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Amount           decimal.Decimal `json:"amount"`
			CollateralAmount decimal.Decimal `json:"collateral_amount"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		receipt, err := ledgerSrv.GenerateLoanReceipt(r.Context(), loanID(r), params.Amount, params.CollateralAmount)
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, receipt)
	}
}

func underwaterHandler(liquidationSrv core.ILiquidationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loans, err := liquidationSrv.FindUnderwater(r.Context())
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, loans)
	}
}

func loanID(r *http.Request) uint64 {
	return cast.ToUint64(chi.URLParam(r, "id"))
}
