package handlers

import (
	"net/http"

	"hospital_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// StockHandler serves the pharmacy and the general inventory.
type StockHandler struct {
	pharmacyService  services.PharmacyService
	inventoryService services.InventoryService
}

// NewStockHandler creates a new StockHandler.
func NewStockHandler(ps services.PharmacyService, is services.InventoryService) *StockHandler {
	return &StockHandler{pharmacyService: ps, inventoryService: is}
}

// --- Pharmacy ---

func (h *StockHandler) CreateMedicine(c *gin.Context) {
	var req services.CreatePharmacyItemRequest
	if !bindJSON(c, &req, "CreateMedicine") {
		return
	}
	item, err := h.pharmacyService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "add medicine")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *StockHandler) GetMedicines(c *gin.Context) {
	page, pageSize := pageParams(c)
	items, total, err := h.pharmacyService.GetItems(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch medicines")
		return
	}
	respondList(c, items, total, page, pageSize)
}

func (h *StockHandler) GetMedicineByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.pharmacyService.GetItemByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch medicine")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) UpdateMedicine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdatePharmacyItemRequest
	if !bindJSON(c, &req, "UpdateMedicine") {
		return
	}
	item, err := h.pharmacyService.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update medicine")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) DeleteMedicine(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.pharmacyService.DeleteItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete medicine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicine deleted successfully"})
}

func (h *StockHandler) GetLowStockMedicines(c *gin.Context) {
	items, err := h.pharmacyService.LowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "fetch low stock medicines")
		return
	}
	c.JSON(http.StatusOK, items)
}

// --- Inventory ---

func (h *StockHandler) CreateInventoryItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if !bindJSON(c, &req, "CreateInventoryItem") {
		return
	}
	item, err := h.inventoryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "add inventory item")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *StockHandler) GetInventoryItems(c *gin.Context) {
	page, pageSize := pageParams(c)
	items, total, err := h.inventoryService.GetItems(c.Request.Context(), page, pageSize)
	if err != nil {
		respondServiceError(c, err, "fetch inventory")
		return
	}
	respondList(c, items, total, page, pageSize)
}

func (h *StockHandler) GetInventoryItemByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := h.inventoryService.GetItemByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "fetch inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) UpdateInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.UpdateInventoryItemRequest
	if !bindJSON(c, &req, "UpdateInventoryItem") {
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "update inventory item")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *StockHandler) DeleteInventoryItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.inventoryService.DeleteItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "delete inventory item")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

func (h *StockHandler) GetLowStockInventory(c *gin.Context) {
	items, err := h.inventoryService.LowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "fetch low stock inventory")
		return
	}
	c.JSON(http.StatusOK, items)
}
