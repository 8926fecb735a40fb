package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
	locationrepo "github.com/groundtrade/inventory/repository/location"
	productrepo "github.com/groundtrade/inventory/repository/product"
	redisrepo "github.com/groundtrade/inventory/repository/redis"
	"github.com/groundtrade/inventory/utils/errors"
	"github.com/groundtrade/inventory/utils/logger"
	"go.uber.org/zap"
)

type CatalogApp interface {
	ListProducts(ctx context.Context, page, perPage int) (*model.ProductListResponse, error)
	GetProduct(ctx context.Context, id uint64) (*model.Product, error)
	CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) error
	GetShop(ctx context.Context, id uint64) (*model.Shop, error)
	GetWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error)
	ActivateWarehouse(ctx context.Context, warehouseID uint64) error
	DeactivateWarehouse(ctx context.Context, warehouseID uint64) error
}

type catalogAppImpl struct {
	productRepo  productrepo.ProductRepository
	locationRepo locationrepo.LocationRepository
	redisRepo    redisrepo.Repository
	cacheTTL     time.Duration
}

func NewCatalogApp(productRepo productrepo.ProductRepository, locationRepo locationrepo.LocationRepository, redisRepo redisrepo.Repository, cacheTTL time.Duration) CatalogApp {
	return &catalogAppImpl{
		productRepo:  productRepo,
		locationRepo: locationRepo,
		redisRepo:    redisRepo,
		cacheTTL:     cacheTTL,
	}
}

func productCacheKey(id uint64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *catalogAppImpl) ListProducts(ctx context.Context, page, perPage int) (*model.ProductListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	items, total, err := s.productRepo.List(ctx, page, perPage)
	if err != nil {
		logger.Error("[ListProducts] error productRepo.List", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.ProductListResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *catalogAppImpl) GetProduct(ctx context.Context, id uint64) (*model.Product, error) {
	if s.redisRepo != nil {
		if cached, err := s.redisRepo.Get(ctx, productCacheKey(id)); err == nil && cached != "" {
			var p model.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		logger.Error("[GetProduct] error productRepo.GetByID", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if product == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}

	if s.redisRepo != nil {
		if body, err := json.Marshal(product); err == nil {
			if err := s.redisRepo.SetWithTTL(ctx, productCacheKey(id), string(body), s.cacheTTL); err != nil {
				logger.Warn("[GetProduct] cache set", zap.String("error", err.Error()))
			}
		}
	}

	return product, nil
}

func (s *catalogAppImpl) CreateProduct(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductInvariants(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		SKU:        req.SKU,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Cost:       req.Cost,
		MinStock:   req.MinStock,
		MaxStock:   req.MaxStock,
		Unit:       req.Unit,
	}

	id, err := s.productRepo.Create(ctx, product)
	if err != nil {
		logger.Error("[CreateProduct] error productRepo.Create", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	product.ID = id

	return product, nil
}

func (s *catalogAppImpl) UpdateProduct(ctx context.Context, id uint64, req *model.ProductRequest) error {
	if err := validateProductInvariants(req); err != nil {
		return err
	}

	product := &model.Product{
		ID:         id,
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Price:      req.Price,
		Cost:       req.Cost,
		MinStock:   req.MinStock,
		MaxStock:   req.MaxStock,
		Unit:       req.Unit,
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if err == sql.ErrNoRows {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[UpdateProduct] error productRepo.Update", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if s.redisRepo != nil {
		if err := s.redisRepo.Delete(ctx, productCacheKey(id)); err != nil {
			logger.Warn("[UpdateProduct] cache invalidate", zap.String("error", err.Error()))
		}
	}

	return nil
}

func validateProductInvariants(req *model.ProductRequest) error {
	if req.Price.IsNegative() {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if req.MinStock > req.MaxStock {
		return errors.SetCustomError(constant.ErrInvalidRequest)
	}
	return nil
}

func (s *catalogAppImpl) GetShop(ctx context.Context, id uint64) (*model.Shop, error) {
	shop, err := s.locationRepo.GetShopByID(ctx, id)
	if err != nil {
		logger.Error("[GetShop] get shop", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if shop == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return shop, nil
}

func (s *catalogAppImpl) GetWarehouse(ctx context.Context, id uint64) (*model.Warehouse, error) {
	warehouse, err := s.locationRepo.GetWarehouseByID(ctx, id)
	if err != nil {
		logger.Error("[GetWarehouse] get warehouse", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if warehouse == nil {
		return nil, errors.SetCustomError(constant.ErrNotFound)
	}
	return warehouse, nil
}

func (s *catalogAppImpl) ActivateWarehouse(ctx context.Context, warehouseID uint64) error {
	return s.setWarehouseStatus(ctx, warehouseID, constant.WarehouseStatusActive)
}

func (s *catalogAppImpl) DeactivateWarehouse(ctx context.Context, warehouseID uint64) error {
	return s.setWarehouseStatus(ctx, warehouseID, constant.WarehouseStatusInactive)
}

func (s *catalogAppImpl) setWarehouseStatus(ctx context.Context, warehouseID uint64, status constant.WarehouseStatus) error {
	warehouse, err := s.locationRepo.GetWarehouseByID(ctx, warehouseID)
	if err != nil {
		logger.Error("[SetWarehouseStatus] get warehouse", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if warehouse == nil {
		return errors.SetCustomError(constant.ErrNotFound)
	}

	if err := s.locationRepo.UpdateWarehouseStatus(ctx, warehouseID, status); err != nil {
		if err == sql.ErrNoRows {
			return errors.SetCustomError(constant.ErrNotFound)
		}
		logger.Error("[SetWarehouseStatus] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	return nil
}
