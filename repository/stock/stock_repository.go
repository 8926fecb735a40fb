package stock

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/groundtrade/inventory/model"
)

type StockRepository interface {
	GetEntry(ctx context.Context, loc model.Location, productID uint64) (*model.StockEntry, error)
	GetEntryForUpdateTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64) (*model.StockEntry, error)
	UpsertQuantityTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, quantity int64) error
	AddQuantityTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, delta int64) error
	ReserveTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, quantity int64) error
	ConsumeReservedTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, quantity int64) error
	ListByLocation(ctx context.Context, loc model.Location) ([]model.StockEntry, error)
	TotalAcrossLocations(ctx context.Context, productID uint64) (int64, error)
}

type SQL struct {
	conn *sqlx.DB
}

func NewStockRepository(conn *sqlx.DB) StockRepository {
	return &SQL{conn: conn}
}

const entryColumns = "location_type, location_id, product_id, quantity, reserved, updated_at"

func (r *SQL) GetEntry(ctx context.Context, loc model.Location, productID uint64) (*model.StockEntry, error) {
	var entry model.StockEntry
	q := "SELECT " + entryColumns + " FROM stock_entry WHERE location_type = ? AND location_id = ? AND product_id = ?"
	if err := r.conn.GetContext(ctx, &entry, q, loc.Type, loc.ID, productID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *SQL) GetEntryForUpdateTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64) (*model.StockEntry, error) {
	var entry model.StockEntry
	q := "SELECT " + entryColumns + " FROM stock_entry WHERE location_type = ? AND location_id = ? AND product_id = ? FOR UPDATE"
	if err := tx.GetContext(ctx, &entry, q, loc.Type, loc.ID, productID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (r *SQL) UpsertQuantityTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, quantity int64) error {
	// reserved is deliberately left alone on quantity writes
	q := `INSERT INTO stock_entry (location_type, location_id, product_id, quantity, reserved, updated_at)
		VALUES (?, ?, ?, ?, 0, NOW())
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity), updated_at = NOW()`
	_, err := tx.ExecContext(ctx, q, loc.Type, loc.ID, productID, quantity)
	return err
}

func (r *SQL) AddQuantityTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, delta int64) error {
	q := `INSERT INTO stock_entry (location_type, location_id, product_id, quantity, reserved, updated_at)
		VALUES (?, ?, ?, ?, 0, NOW())
		ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity), updated_at = NOW()`
	_, err := tx.ExecContext(ctx, q, loc.Type, loc.ID, productID, delta)
	return err
}

func (r *SQL) ReserveTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, quantity int64) error {
	q := "UPDATE stock_entry SET reserved = reserved + ?, updated_at = NOW() WHERE location_type = ? AND location_id = ? AND product_id = ?"
	_, err := tx.ExecContext(ctx, q, quantity, loc.Type, loc.ID, productID)
	return err
}

func (r *SQL) ConsumeReservedTx(ctx context.Context, tx *sqlx.Tx, loc model.Location, productID uint64, quantity int64) error {
	q := "UPDATE stock_entry SET quantity = quantity - ?, reserved = reserved - ?, updated_at = NOW() WHERE location_type = ? AND location_id = ? AND product_id = ?"
	_, err := tx.ExecContext(ctx, q, quantity, quantity, loc.Type, loc.ID, productID)
	return err
}

func (r *SQL) ListByLocation(ctx context.Context, loc model.Location) ([]model.StockEntry, error) {
	entries := make([]model.StockEntry, 0)
	q := "SELECT " + entryColumns + " FROM stock_entry WHERE location_type = ? AND location_id = ? ORDER BY product_id"
	if err := r.conn.SelectContext(ctx, &entries, q, loc.Type, loc.ID); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SQL) TotalAcrossLocations(ctx context.Context, productID uint64) (int64, error) {
	var total sql.NullInt64
	q := "SELECT COALESCE(SUM(quantity),0) as total FROM stock_entry WHERE product_id = ?"
	if err := r.conn.GetContext(ctx, &total, q, productID); err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return total.Int64, nil
}
