package models

import "time"

const (
	PharmacyStatusAvailable  = "available"
	PharmacyStatusOutOfStock = "out_of_stock"
	PharmacyStatusExpired    = "expired"
)

type PharmacyItem struct {
	ID           int64     `json:"id" db:"id"`
	MedicineName string    `json:"medicine_name" db:"medicine_name"`
	Quantity     int       `json:"quantity" db:"quantity"`
	UnitPrice    float64   `json:"unit_price" db:"unit_price"`
	ExpiryDate   time.Time `json:"expiry_date" db:"expiry_date"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type InventoryItem struct {
	ID           int64     `json:"id" db:"id"`
	ItemName     string    `json:"item_name" db:"item_name"`
	Category     string    `json:"category" db:"category"` // medical_supplies, equipment, cleaning_supplies
	Quantity     int       `json:"quantity" db:"quantity"`
	UnitPrice    float64   `json:"unit_price" db:"unit_price"`
	ReorderLevel int       `json:"reorder_level" db:"reorder_level"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// IsLowStock reports whether the item fell under its reorder level.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity < i.ReorderLevel
}
