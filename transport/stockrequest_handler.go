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

// CreateStockRequest handler
// @Summary Create a transfer request from a shop to a warehouse
// @Tags StockRequest
// @Accept json
// @Produce json
// @Param request body model.CreateStockRequestRequest true "Request"
// @Success 200 {object} model.StockRequest
// @Security BearerAuth
// @Router /stock-requests [post]
func (s *RestHandler) CreateStockRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.CreateStockRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.RequestApp.Create(ctx, actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ListStockRequests handler
// @Summary List transfer requests
// @Tags StockRequest
// @Produce json
// @Param shop_id query int false "Shop ID"
// @Param warehouse_id query int false "Warehouse ID"
// @Param status query string false "Status name (pending, approved, declined, fulfilled)"
// @Success 200 {array} model.StockRequest
// @Security BearerAuth
// @Router /stock-requests [get]
func (s *RestHandler) ListStockRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	shopID, _ := strconv.ParseUint(r.URL.Query().Get("shop_id"), 10, 64)
	warehouseID, _ := strconv.ParseUint(r.URL.Query().Get("warehouse_id"), 10, 64)
	status := statusFromQuery(r.URL.Query().Get("status"))

	res, err := s.RequestApp.List(ctx, &model.StockRequestFilter{
		ShopID:      shopID,
		WarehouseID: warehouseID,
		Status:      status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// statusFromQuery resolves a status name; zero means no status filter.
func statusFromQuery(name string) constant.RequestStatus {
	for status, n := range constant.RequestStatusName {
		if n == name {
			return status
		}
	}
	return 0
}

func requestIDFromPath(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return id, nil
}

// ApproveStockRequest handler
// @Summary Approve a pending transfer request
// @Tags StockRequest
// @Accept json
// @Param id path int true "Request ID"
// @Param request body model.ApproveStockRequestRequest false "Approved quantity override"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /stock-requests/{id}/approve [post]
func (s *RestHandler) ApproveStockRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	id, err := requestIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	// body is optional; absent body approves the requested quantity
	var req model.ApproveStockRequestRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := s.RequestApp.Approve(ctx, actor, id, req.ApprovedQuantity); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeclineStockRequest handler
// @Summary Decline a pending transfer request
// @Tags StockRequest
// @Param id path int true "Request ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /stock-requests/{id}/decline [post]
func (s *RestHandler) DeclineStockRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	id, err := requestIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.RequestApp.Decline(ctx, actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// FulfillStockRequest handler
// @Summary Fulfill an approved transfer request, moving stock to the shop
// @Tags StockRequest
// @Param id path int true "Request ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /stock-requests/{id}/fulfill [post]
func (s *RestHandler) FulfillStockRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	id, err := requestIDFromPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.RequestApp.Fulfill(ctx, actor, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AutoStockRequest handler for the low-stock consumer (internal API key).
func (s *RestHandler) AutoStockRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var event model.LowStockEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.RequestApp.CreateAuto(ctx, &event)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
