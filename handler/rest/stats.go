package rest

import (
	"net/http"
	"time"

	"sblend/core"
	"sblend/handler/render"
)

func statsHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ledgerSrv.Stats(r.Context())
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, stats)
	}
}

func timeHandler(blockSrv core.IBlockService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()
		block, err := blockSrv.GetBlock(r.Context(), now)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{
			"block":     block,
			"timestamp": now.Unix(),
		})
	}
}
