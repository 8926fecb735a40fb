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

// ListProducts handler
// @Summary List products
// @Tags Catalog
// @Produce json
// @Param page query int false "Page"
// @Param per_page query int false "Per page"
// @Success 200 {object} model.ProductListResponse
// @Security BearerAuth
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	res, err := s.CatalogApp.ListProducts(ctx, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product detail
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Security BearerAuth
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.GetProduct(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} model.Product
// @Security BearerAuth
// @Router /products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok || actor.Role != constant.RoleAdmin {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.CatalogApp.CreateProduct(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateProduct handler
// @Summary Update product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.ProductRequest true "Product"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok || actor.Role != constant.RoleAdmin {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.CatalogApp.UpdateProduct(ctx, id, &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ActivateWarehouse handler
// @Summary Activate warehouse
// @Tags Catalog
// @Param id path int true "Warehouse ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /warehouses/{id}/activate [post]
func (s *RestHandler) ActivateWarehouse(w http.ResponseWriter, r *http.Request) {
	s.setWarehouseStatus(w, r, true)
}

// DeactivateWarehouse handler
// @Summary Deactivate warehouse
// @Tags Catalog
// @Param id path int true "Warehouse ID"
// @Success 200 {object} response
// @Security BearerAuth
// @Router /warehouses/{id}/deactivate [post]
func (s *RestHandler) DeactivateWarehouse(w http.ResponseWriter, r *http.Request) {
	s.setWarehouseStatus(w, r, false)
}

func (s *RestHandler) setWarehouseStatus(w http.ResponseWriter, r *http.Request, active bool) {
	ctx := r.Context()

	actor, ok := utilsContext.GetActor(ctx)
	if !ok || actor.Role != constant.RoleAdmin {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if active {
		err = s.CatalogApp.ActivateWarehouse(ctx, id)
	} else {
		err = s.CatalogApp.DeactivateWarehouse(ctx, id)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}
