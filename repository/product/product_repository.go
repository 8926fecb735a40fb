package product

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/groundtrade/inventory/model"
)

type ProductRepository interface {
	List(ctx context.Context, page, perPage int) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id uint64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) (uint64, error)
	Update(ctx context.Context, p *model.Product) error
}

type SQL struct {
	conn *sqlx.DB
}

func NewProductRepository(conn *sqlx.DB) ProductRepository {
	return &SQL{conn: conn}
}

const productColumns = "id, sku, name, category_id, price, cost, min_stock, max_stock, unit, created_at, updated_at"

func (r *SQL) List(ctx context.Context, page, perPage int) ([]model.Product, int64, error) {
	offset := (page - 1) * perPage

	items := make([]model.Product, 0)
	q := "SELECT " + productColumns + " FROM product ORDER BY name LIMIT ? OFFSET ?"
	if err := r.conn.SelectContext(ctx, &items, q, perPage, offset); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.conn.GetContext(ctx, &total, "SELECT COUNT(*) FROM product"); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *SQL) GetByID(ctx context.Context, id uint64) (*model.Product, error) {
	var p model.Product
	q := "SELECT " + productColumns + " FROM product WHERE id = ?"
	if err := r.conn.GetContext(ctx, &p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQL) Create(ctx context.Context, p *model.Product) (uint64, error) {
	q := `INSERT INTO product (sku, name, category_id, price, cost, min_stock, max_stock, unit, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())`
	res, err := r.conn.ExecContext(ctx, q, p.SKU, p.Name, p.CategoryID, p.Price, p.Cost, p.MinStock, p.MaxStock, p.Unit)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *SQL) Update(ctx context.Context, p *model.Product) error {
	// identity and sku are immutable once created
	q := `UPDATE product SET name = ?, category_id = ?, price = ?, cost = ?, min_stock = ?, max_stock = ?, unit = ?, updated_at = NOW() WHERE id = ?`
	res, err := r.conn.ExecContext(ctx, q, p.Name, p.CategoryID, p.Price, p.Cost, p.MinStock, p.MaxStock, p.Unit, p.ID)
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
