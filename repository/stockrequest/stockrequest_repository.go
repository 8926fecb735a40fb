package stockrequest

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
)

type StockRequestRepository interface {
	Insert(ctx context.Context, req *model.StockRequest) (uint64, error)
	GetByID(ctx context.Context, id uint64) (*model.StockRequest, error)
	GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.StockRequest, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.RequestStatus) error
	ApproveTx(ctx context.Context, tx *sqlx.Tx, id uint64, approvedBy uint64, approvedQuantity int64) error
	List(ctx context.Context, filter *model.StockRequestFilter) ([]model.StockRequest, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRequestRepository(conn *sqlx.DB) StockRequestRepository {
	return &SQL{conn: conn}
}

const requestColumns = "id, shop_id, warehouse_id, product_id, requested_quantity, requested_by, status, approved_by, approved_quantity, notes, created_at, updated_at"

func (r *SQL) Insert(ctx context.Context, req *model.StockRequest) (uint64, error) {
	q := `INSERT INTO stock_request (shop_id, warehouse_id, product_id, requested_quantity, requested_by, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`
	res, err := r.conn.ExecContext(ctx, q, req.ShopID, req.WarehouseID, req.ProductID, req.RequestedQuantity, req.RequestedBy, req.Status, req.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.StockRequest, error) {
	var req model.StockRequest
	q := "SELECT " + requestColumns + " FROM stock_request WHERE id = ?"
	if err := r.conn.GetContext(ctx, &req, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *SQL) GetByIDForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uint64) (*model.StockRequest, error) {
	var req model.StockRequest
	q := "SELECT " + requestColumns + " FROM stock_request WHERE id = ? FOR UPDATE"
	if err := tx.GetContext(ctx, &req, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

func (r *SQL) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id uint64, status constant.RequestStatus) error {
	_, err := tx.ExecContext(ctx, "UPDATE stock_request SET status = ?, updated_at = NOW() WHERE id = ?", status, id)
	return err
}

func (r *SQL) ApproveTx(ctx context.Context, tx *sqlx.Tx, id uint64, approvedBy uint64, approvedQuantity int64) error {
	q := "UPDATE stock_request SET status = ?, approved_by = ?, approved_quantity = ?, updated_at = NOW() WHERE id = ?"
	_, err := tx.ExecContext(ctx, q, constant.RequestStatusApproved, approvedBy, approvedQuantity, id)
	return err
}

func (r *SQL) List(ctx context.Context, filter *model.StockRequestFilter) ([]model.StockRequest, error) {
	q := "SELECT " + requestColumns + " FROM stock_request WHERE 1=1"
	args := make([]interface{}, 0, 3)
	if filter != nil {
		if filter.ShopID != 0 {
			q += " AND shop_id = ?"
			args = append(args, filter.ShopID)
		}
		if filter.WarehouseID != 0 {
			q += " AND warehouse_id = ?"
			args = append(args, filter.WarehouseID)
		}
		if filter.Status != 0 {
			q += " AND status = ?"
			args = append(args, filter.Status)
		}
	}
	q += " ORDER BY created_at DESC"

	requests := make([]model.StockRequest, 0)
	if err := r.conn.SelectContext(ctx, &requests, q, args...); err != nil {
		return nil, err
	}
	return requests, nil
}
