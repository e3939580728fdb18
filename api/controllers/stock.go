package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/teltechdev/teltech-backend/api/responses"
	"github.com/teltechdev/teltech-backend/api/validators"
	"github.com/teltechdev/teltech-backend/internal/stock"
	pkgerrors "github.com/teltechdev/teltech-backend/pkg/errors"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/types"
)

// DeductStock reserves units for a cart addition. The deduction either fully
// applies or the stock row is untouched; an insufficient balance comes back
// as 422 with the available count in the details.
func DeductStock(svc stock.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stock service unavailable"))
			return
		}

		var payload types.StockDeductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		result, err := svc.Deduct(r.Context(), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
