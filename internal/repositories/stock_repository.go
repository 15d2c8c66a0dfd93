package repositories

import (
	"context"
	"time"

	"hospital_backend/internal/models"
)

// PharmacyRepository defines medicine stock persistence operations.
type PharmacyRepository interface {
	CreateItem(ctx context.Context, executor SQLExecutor, item *models.PharmacyItem) (*models.PharmacyItem, error)
	GetItemByID(ctx context.Context, executor SQLExecutor, id int64) (*models.PharmacyItem, error)
	GetItems(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.PharmacyItem, int, error)
	UpdateItem(ctx context.Context, executor SQLExecutor, item *models.PharmacyItem) (*models.PharmacyItem, error)
	DeleteItem(ctx context.Context, executor SQLExecutor, id int64) error
	// GetLowStock returns medicines with quantity strictly below threshold.
	GetLowStock(ctx context.Context, executor SQLExecutor, threshold int) ([]models.PharmacyItem, error)
}

// InventoryRepository defines supply stock persistence operations.
type InventoryRepository interface {
	CreateItem(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) (*models.InventoryItem, error)
	GetItemByID(ctx context.Context, executor SQLExecutor, id int64) (*models.InventoryItem, error)
	GetItems(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.InventoryItem, int, error)
	UpdateItem(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, executor SQLExecutor, id int64) error
	// GetLowStock returns items whose quantity is below their own reorder level.
	GetLowStock(ctx context.Context, executor SQLExecutor) ([]models.InventoryItem, error)
}

type pharmacyRepository struct{}

type inventoryRepository struct{}

// NewPharmacyRepository creates a new instance of PharmacyRepository.
func NewPharmacyRepository() PharmacyRepository {
	return &pharmacyRepository{}
}

// NewInventoryRepository creates a new instance of InventoryRepository.
func NewInventoryRepository() InventoryRepository {
	return &inventoryRepository{}
}

// --- Pharmacy ---

const pharmacyColumns = `id, medicine_name, quantity, unit_price, expiry_date, status, created_at`

func scanPharmacyItem(row scanner) (*models.PharmacyItem, error) {
	var p models.PharmacyItem
	if err := row.Scan(&p.ID, &p.MedicineName, &p.Quantity, &p.UnitPrice, &p.ExpiryDate, &p.Status, &p.CreatedAt); err != nil {
		return nil, wrapDBError(err, "scanning pharmacy item")
	}
	return &p, nil
}

func (r *pharmacyRepository) CreateItem(ctx context.Context, executor SQLExecutor, item *models.PharmacyItem) (*models.PharmacyItem, error) {
	query := `INSERT INTO pharmacy (medicine_name, quantity, unit_price, expiry_date, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + pharmacyColumns
	return scanPharmacyItem(executor.QueryRowContext(ctx, query,
		item.MedicineName, item.Quantity, item.UnitPrice, item.ExpiryDate, item.Status, time.Now().UTC()))
}

func (r *pharmacyRepository) GetItemByID(ctx context.Context, executor SQLExecutor, id int64) (*models.PharmacyItem, error) {
	return scanPharmacyItem(executor.QueryRowContext(ctx, `SELECT `+pharmacyColumns+` FROM pharmacy WHERE id = $1`, id))
}

func (r *pharmacyRepository) GetItems(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.PharmacyItem, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM pharmacy`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+pharmacyColumns+` FROM pharmacy ORDER BY medicine_name, id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying pharmacy")
	}
	items, err := collectRows(rows, scanPharmacyItem, "iterating pharmacy")
	return items, total, err
}

func (r *pharmacyRepository) UpdateItem(ctx context.Context, executor SQLExecutor, item *models.PharmacyItem) (*models.PharmacyItem, error) {
	query := `UPDATE pharmacy SET quantity = $1, status = $2 WHERE id = $3 RETURNING ` + pharmacyColumns
	return scanPharmacyItem(executor.QueryRowContext(ctx, query, item.Quantity, item.Status, item.ID))
}

func (r *pharmacyRepository) DeleteItem(ctx context.Context, executor SQLExecutor, id int64) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM pharmacy WHERE id = $1`, id)
	if err != nil {
		return wrapDBError(err, "deleting pharmacy item")
	}
	return requireAffected(res, "deleting pharmacy item")
}

func (r *pharmacyRepository) GetLowStock(ctx context.Context, executor SQLExecutor, threshold int) ([]models.PharmacyItem, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+pharmacyColumns+` FROM pharmacy WHERE quantity < $1 ORDER BY quantity, id`, threshold)
	if err != nil {
		return nil, wrapDBError(err, "querying low stock medicines")
	}
	return collectRows(rows, scanPharmacyItem, "iterating low stock medicines")
}

// --- Inventory ---

const inventoryColumns = `id, item_name, category, quantity, unit_price, reorder_level, created_at`

func scanInventoryItem(row scanner) (*models.InventoryItem, error) {
	var i models.InventoryItem
	if err := row.Scan(&i.ID, &i.ItemName, &i.Category, &i.Quantity, &i.UnitPrice, &i.ReorderLevel, &i.CreatedAt); err != nil {
		return nil, wrapDBError(err, "scanning inventory item")
	}
	return &i, nil
}

func (r *inventoryRepository) CreateItem(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) (*models.InventoryItem, error) {
	query := `INSERT INTO inventory (item_name, category, quantity, unit_price, reorder_level, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + inventoryColumns
	return scanInventoryItem(executor.QueryRowContext(ctx, query,
		item.ItemName, item.Category, item.Quantity, item.UnitPrice, item.ReorderLevel, time.Now().UTC()))
}

func (r *inventoryRepository) GetItemByID(ctx context.Context, executor SQLExecutor, id int64) (*models.InventoryItem, error) {
	return scanInventoryItem(executor.QueryRowContext(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id))
}

func (r *inventoryRepository) GetItems(ctx context.Context, executor SQLExecutor, page, pageSize int) ([]models.InventoryItem, int, error) {
	total, err := countRows(ctx, executor, `SELECT COUNT(*) FROM inventory`)
	if err != nil {
		return nil, 0, err
	}
	query, args := paginate(`SELECT `+inventoryColumns+` FROM inventory ORDER BY item_name, id`, nil, page, pageSize)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, wrapDBError(err, "querying inventory")
	}
	items, err := collectRows(rows, scanInventoryItem, "iterating inventory")
	return items, total, err
}

func (r *inventoryRepository) UpdateItem(ctx context.Context, executor SQLExecutor, item *models.InventoryItem) (*models.InventoryItem, error) {
	query := `UPDATE inventory SET quantity = $1, unit_price = $2, reorder_level = $3 WHERE id = $4 RETURNING ` + inventoryColumns
	return scanInventoryItem(executor.QueryRowContext(ctx, query, item.Quantity, item.UnitPrice, item.ReorderLevel, item.ID))
}

func (r *inventoryRepository) DeleteItem(ctx context.Context, executor SQLExecutor, id int64) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return wrapDBError(err, "deleting inventory item")
	}
	return requireAffected(res, "deleting inventory item")
}

func (r *inventoryRepository) GetLowStock(ctx context.Context, executor SQLExecutor) ([]models.InventoryItem, error) {
	rows, err := executor.QueryContext(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE quantity < reorder_level ORDER BY id`)
	if err != nil {
		return nil, wrapDBError(err, "querying low stock inventory")
	}
	return collectRows(rows, scanInventoryItem, "iterating low stock inventory")
}
