package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	utilsContext "github.com/groundtrade/inventory/utils/context"
	"github.com/groundtrade/inventory/utils/errors"
	validatorx "github.com/groundtrade/inventory/utils/validator"
)

func locationFromQuery(r *http.Request) (model.Location, bool) {
	locType := constant.LocationType(r.URL.Query().Get("location_type"))
	if locType != constant.LocationWarehouse && locType != constant.LocationShop {
		return model.Location{}, false
	}
	locID, err := strconv.ParseUint(r.URL.Query().Get("location_id"), 10, 64)
	if err != nil || locID == 0 {
		return model.Location{}, false
	}
	return model.Location{Type: locType, ID: locID}, true
}

// GetStockEntry handler
// @Summary Get the stock entry for one location and product
// @Tags Stock
// @Produce json
// @Param location_type query string true "warehouse or shop"
// @Param location_id query int true "Location ID"
// @Param product_id query int true "Product ID"
// @Success 200 {object} model.StockEntry
// @Security BearerAuth
// @Router /stock/entry [get]
func (s *RestHandler) GetStockEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loc, ok := locationFromQuery(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	productID, err := strconv.ParseUint(r.URL.Query().Get("product_id"), 10, 64)
	if err != nil || productID == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	entry, err := s.StockApp.GetEntry(ctx, loc, productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, entry)
}

// SetStockQuantity handler
// @Summary Set the absolute quantity for one location and product
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body model.SetQuantityRequest true "Quantity"
// @Success 200 {object} model.StockEntry
// @Security BearerAuth
// @Router /stock/entry [put]
func (s *RestHandler) SetStockQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	entry, err := s.StockApp.SetQuantity(ctx, actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, entry)
}

// ListLocationStock handler
// @Summary List stock entries at a location
// @Tags Stock
// @Produce json
// @Param location_type query string true "warehouse or shop"
// @Param location_id query int true "Location ID"
// @Success 200 {array} model.StockEntry
// @Security BearerAuth
// @Router /stock/location [get]
func (s *RestHandler) ListLocationStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loc, ok := locationFromQuery(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	entries, err := s.StockApp.ListByLocation(ctx, loc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, entries)
}

// ProductStockTotal handler
// @Summary Total quantity of a product across all locations
// @Tags Stock
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /products/{id}/stock-total [get]
func (s *RestHandler) ProductStockTotal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	total, err := s.StockApp.TotalAcrossLocations(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, struct {
		ProductID uint64 `json:"product_id"`
		Total     int64  `json:"total"`
	}{ProductID: id, Total: total})
}
