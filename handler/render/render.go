package render

import (
	"encoding/json"
	"net/http"

	"sblend/core"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(v)
}

// Text render with text
func Text(w http.ResponseWriter, t string) {
	w.Header().Set("Content-Type", "application/text")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(t))
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(H{"code": errCode, "msg": err.Error()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err)
}

// Code maps a ledger error code to its http status, keeping the
// numeric code in the body for clients that switch on it
func Code(w http.ResponseWriter, err error) {
	code, ok := err.(core.ErrorCode)
	if !ok {
		Error(w, http.StatusInternalServerError, -1, err)
		return
	}

	Error(w, httpStatus(code), int(code), err)
}

func httpStatus(code core.ErrorCode) int {
	switch code {
	case core.ErrLoanNotFound:
		return http.StatusNotFound
	case core.ErrOperationForbidden:
		return http.StatusForbidden
	case core.ErrLoanNotActive, core.ErrNotLiquidatable, core.ErrOverRepayment, core.ErrStateMismatch:
		return http.StatusConflict
	case core.ErrPriceStale:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}
