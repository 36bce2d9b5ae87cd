package handler

import (
	"errors"
	"net/http"

	analyticsapp "github.com/keisys/teppan-register/internal/analytics/app"
	catalogapp "github.com/keisys/teppan-register/internal/catalog/app"
	checkoutapp "github.com/keisys/teppan-register/internal/checkout/app"
	ledgerapp "github.com/keisys/teppan-register/internal/ledger/app"
	"github.com/keisys/teppan-register/internal/ledger/codec"
)

// httpStatusFromErr maps service errors onto HTTP responses. The three
// checkout failure families stay distinguishable for the operator:
// user mistakes are 400, a row that cannot be written safely is 500,
// a store that is down is 503 and safe to retry.
func httpStatusFromErr(err error) (int, string) {
	switch {
	case errors.Is(err, catalogapp.ErrUnknownSKU):
		return http.StatusBadRequest, "UNKNOWN_SKU"
	case errors.Is(err, catalogapp.ErrInvalidBundle):
		return http.StatusBadRequest, "INVALID_BUNDLE"
	case errors.Is(err, checkoutapp.ErrEmptyCart):
		return http.StatusBadRequest, "EMPTY_CART"
	case errors.Is(err, analyticsapp.ErrInvalidBucket):
		return http.StatusBadRequest, "INVALID_BUCKET"
	case errors.Is(err, analyticsapp.ErrUnknownItem):
		return http.StatusBadRequest, "UNKNOWN_ITEM"
	case errors.Is(err, codec.ErrSchemaMismatch):
		return http.StatusInternalServerError, "SCHEMA_MISMATCH"
	case errors.Is(err, ledgerapp.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}
