package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital_backend/internal/models"
	"hospital_backend/internal/repositories"
)

var (
	ErrPharmacyItemNotFound  = errors.New("medicine not found")
	ErrInventoryItemNotFound = errors.New("inventory item not found")
)

// --- Pharmacy DTOs ---

type CreatePharmacyItemRequest struct {
	MedicineName string    `json:"medicine_name" binding:"required"`
	Quantity     int       `json:"quantity" binding:"gte=0"`
	UnitPrice    float64   `json:"unit_price" binding:"gte=0"`
	ExpiryDate   time.Time `json:"expiry_date" binding:"required"`
}

type UpdatePharmacyItemRequest struct {
	Quantity *int    `json:"quantity" binding:"omitempty,gte=0"`
	Status   *string `json:"status" binding:"omitempty,oneof=available out_of_stock expired"`
}

func (r UpdatePharmacyItemRequest) Apply(item *models.PharmacyItem) {
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.Status != nil {
		item.Status = *r.Status
	}
}

// --- Inventory DTOs ---

type CreateInventoryItemRequest struct {
	ItemName     string  `json:"item_name" binding:"required"`
	Category     string  `json:"category" binding:"required,oneof=medical_supplies equipment cleaning_supplies"`
	Quantity     int     `json:"quantity" binding:"gte=0"`
	UnitPrice    float64 `json:"unit_price" binding:"gte=0"`
	ReorderLevel int     `json:"reorder_level" binding:"gte=0"`
}

type UpdateInventoryItemRequest struct {
	Quantity     *int     `json:"quantity" binding:"omitempty,gte=0"`
	UnitPrice    *float64 `json:"unit_price" binding:"omitempty,gte=0"`
	ReorderLevel *int     `json:"reorder_level" binding:"omitempty,gte=0"`
}

func (r UpdateInventoryItemRequest) Apply(item *models.InventoryItem) {
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.UnitPrice != nil {
		item.UnitPrice = *r.UnitPrice
	}
	if r.ReorderLevel != nil {
		item.ReorderLevel = *r.ReorderLevel
	}
}

type PharmacyService interface {
	CreateItem(ctx context.Context, req CreatePharmacyItemRequest) (*models.PharmacyItem, error)
	GetItemByID(ctx context.Context, id int64) (*models.PharmacyItem, error)
	GetItems(ctx context.Context, page, pageSize int) ([]models.PharmacyItem, int, error)
	UpdateItem(ctx context.Context, id int64, req UpdatePharmacyItemRequest) (*models.PharmacyItem, error)
	DeleteItem(ctx context.Context, id int64) error
	LowStock(ctx context.Context) ([]models.PharmacyItem, error)
}

type InventoryService interface {
	CreateItem(ctx context.Context, req CreateInventoryItemRequest) (*models.InventoryItem, error)
	GetItemByID(ctx context.Context, id int64) (*models.InventoryItem, error)
	GetItems(ctx context.Context, page, pageSize int) ([]models.InventoryItem, int, error)
	UpdateItem(ctx context.Context, id int64, req UpdateInventoryItemRequest) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, id int64) error
	LowStock(ctx context.Context) ([]models.InventoryItem, error)
}

type pharmacyService struct {
	repo      repositories.PharmacyRepository
	db        repositories.SQLExecutor
	threshold int
}

// NewPharmacyService creates a new instance of PharmacyService. Items with quantity below
// lowStockThreshold are reported by LowStock.
func NewPharmacyService(repo repositories.PharmacyRepository, db repositories.SQLExecutor, lowStockThreshold int) PharmacyService {
	return &pharmacyService{repo: repo, db: db, threshold: lowStockThreshold}
}

func (s *pharmacyService) CreateItem(ctx context.Context, req CreatePharmacyItemRequest) (*models.PharmacyItem, error) {
	created, err := s.repo.CreateItem(ctx, s.db, &models.PharmacyItem{
		MedicineName: req.MedicineName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		ExpiryDate:   req.ExpiryDate,
		Status:       models.PharmacyStatusAvailable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add medicine: %w", err)
	}
	return created, nil
}

func (s *pharmacyService) GetItemByID(ctx context.Context, id int64) (*models.PharmacyItem, error) {
	item, err := s.repo.GetItemByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPharmacyItemNotFound
		}
		return nil, fmt.Errorf("failed to get medicine: %w", err)
	}
	return item, nil
}

func (s *pharmacyService) GetItems(ctx context.Context, page, pageSize int) ([]models.PharmacyItem, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	items, total, err := s.repo.GetItems(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list medicines: %w", err)
	}
	return items, total, nil
}

func (s *pharmacyService) UpdateItem(ctx context.Context, id int64, req UpdatePharmacyItemRequest) (*models.PharmacyItem, error) {
	item, err := s.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(item)

	updated, err := s.repo.UpdateItem(ctx, s.db, item)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrPharmacyItemNotFound
		}
		return nil, fmt.Errorf("failed to update medicine: %w", err)
	}
	return updated, nil
}

func (s *pharmacyService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrPharmacyItemNotFound
		}
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	return nil
}

func (s *pharmacyService) LowStock(ctx context.Context) ([]models.PharmacyItem, error) {
	items, err := s.repo.GetLowStock(ctx, s.db, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock medicines: %w", err)
	}
	return items, nil
}

type inventoryService struct {
	repo repositories.InventoryRepository
	db   repositories.SQLExecutor
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(repo repositories.InventoryRepository, db repositories.SQLExecutor) InventoryService {
	return &inventoryService{repo: repo, db: db}
}

func (s *inventoryService) CreateItem(ctx context.Context, req CreateInventoryItemRequest) (*models.InventoryItem, error) {
	created, err := s.repo.CreateItem(ctx, s.db, &models.InventoryItem{
		ItemName:     req.ItemName,
		Category:     req.Category,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		ReorderLevel: req.ReorderLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add inventory item: %w", err)
	}
	return created, nil
}

func (s *inventoryService) GetItemByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, err := s.repo.GetItemByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return item, nil
}

func (s *inventoryService) GetItems(ctx context.Context, page, pageSize int) ([]models.InventoryItem, int, error) {
	page, pageSize = pageDefaults(page, pageSize)
	items, total, err := s.repo.GetItems(ctx, s.db, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, total, nil
}

func (s *inventoryService) UpdateItem(ctx context.Context, id int64, req UpdateInventoryItemRequest) (*models.InventoryItem, error) {
	item, err := s.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.Apply(item)

	updated, err := s.repo.UpdateItem(ctx, s.db, item)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return updated, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.repo.DeleteItem(ctx, s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInventoryItemNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

func (s *inventoryService) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.GetLowStock(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock inventory: %w", err)
	}
	return items, nil
}
