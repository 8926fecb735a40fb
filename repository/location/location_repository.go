package location

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/groundtrade/inventory/constant"
	"github.com/groundtrade/inventory/model"
)

type LocationRepository interface {
	GetWarehouseByID(ctx context.Context, id uint64) (*model.Warehouse, error)
	GetShopByID(ctx context.Context, id uint64) (*model.Shop, error)
	UpdateWarehouseStatus(ctx context.Context, id uint64, status constant.WarehouseStatus) error
	GetLinkedWarehouseID(ctx context.Context, shopID uint64) (uint64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewLocationRepository(conn *sqlx.DB) LocationRepository {
	return &SQL{conn: conn}
}

func (r *SQL) GetWarehouseByID(ctx context.Context, id uint64) (*model.Warehouse, error) {
	var w model.Warehouse
	q := "SELECT id, name, capacity, status FROM warehouse WHERE id = ?"
	if err := r.conn.GetContext(ctx, &w, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *SQL) GetShopByID(ctx context.Context, id uint64) (*model.Shop, error) {
	var s model.Shop
	q := "SELECT id, name, allow_negative_stock, auto_request_threshold, default_tax_rate FROM shop WHERE id = ?"
	if err := r.conn.GetContext(ctx, &s, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQL) UpdateWarehouseStatus(ctx context.Context, id uint64, status constant.WarehouseStatus) error {
	res, err := r.conn.ExecContext(ctx, "UPDATE warehouse SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetLinkedWarehouseID returns the first active warehouse linked to the shop,
// or zero when the shop has no usable link.
func (r *SQL) GetLinkedWarehouseID(ctx context.Context, shopID uint64) (uint64, error) {
	var id uint64
	q := `SELECT sw.warehouse_id FROM shop_warehouse sw
		JOIN warehouse w ON sw.warehouse_id = w.id
		WHERE sw.shop_id = ? AND w.status = ?
		ORDER BY sw.priority, sw.warehouse_id LIMIT 1`
	if err := r.conn.GetContext(ctx, &id, q, shopID, constant.WarehouseStatusActive); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return id, nil
}

