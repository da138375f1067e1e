package handlers

import (
	"errors"
	"net/http"

	"productivity-api/internal/database"
	"productivity-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateChecklistRequest represents the payload for creating a checklist
type CreateChecklistRequest struct {
	Name string `json:"name" binding:"required"`
}

// ChecklistItemRequest represents the payload for adding or updating an item
type ChecklistItemRequest struct {
	Name      *string  `json:"name"`
	Quantity  *int     `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice"`
	Done      *bool    `json:"done"`
}

// checklistTotal sums quantity x unit price across items, which is what
// makes a checklist usable as a pricing list.
func checklistTotal(items []models.ChecklistItem) float64 {
	total := 0.0
	for _, item := range items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

func loadOwnedChecklist(c *gin.Context, userID, checklistID string, withItems bool) (*models.Checklist, bool) {
	query := database.GetDB().Where("id = ? AND user_id = ?", checklistID, userID)
	if withItems {
		query = query.Preload("Items")
	}
	var checklist models.Checklist
	if err := query.First(&checklist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Checklist not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checklist"})
		}
		return nil, false
	}
	return &checklist, true
}

// GetChecklists handles GET /api/checklists
func GetChecklists(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var checklists []models.Checklist
	if err := database.GetDB().Preload("Items").Where("user_id = ?", userID).
		Order("created_at desc").Find(&checklists).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch checklists"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checklists": checklists,
		"count":      len(checklists),
	})
}

// GetChecklistByID handles GET /api/checklists/:id
// Returns the checklist with its items and the pricing total.
func GetChecklistByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	checklist, ok := loadOwnedChecklist(c, userID, c.Param("id"), true)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checklist": checklist,
		"total":     checklistTotal(checklist.Items),
	})
}

// CreateChecklist handles POST /api/checklists
func CreateChecklist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateChecklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	checklist := models.Checklist{
		ID:     uuid.New().String(),
		Name:   req.Name,
		UserID: userID,
	}
	if err := database.GetDB().Create(&checklist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checklist"})
		return
	}

	c.JSON(http.StatusCreated, checklist)
}

// DeleteChecklist handles DELETE /api/checklists/:id
func DeleteChecklist(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	checklist, ok := loadOwnedChecklist(c, userID, c.Param("id"), false)
	if !ok {
		return
	}

	db := database.GetDB()
	if err := db.Where("checklist_id = ?", checklist.ID).Delete(&models.ChecklistItem{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete checklist items"})
		return
	}
	if err := db.Delete(checklist).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete checklist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checklist deleted successfully",
		"id":      checklist.ID,
	})
}

// AddChecklistItem handles POST /api/checklists/:id/items
func AddChecklistItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	checklist, ok := loadOwnedChecklist(c, userID, c.Param("id"), false)
	if !ok {
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == nil || *req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item name is required"})
		return
	}

	item := models.ChecklistItem{
		ID:          uuid.New().String(),
		ChecklistID: checklist.ID,
		Name:        *req.Name,
		Quantity:    1,
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil && *req.UnitPrice >= 0 {
		item.UnitPrice = *req.UnitPrice
	}

	if err := database.GetDB().Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create item"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateChecklistItem handles PUT /api/checklists/:id/items/:itemId
func UpdateChecklistItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	checklist, ok := loadOwnedChecklist(c, userID, c.Param("id"), false)
	if !ok {
		return
	}

	var item models.ChecklistItem
	result := database.GetDB().Where("id = ? AND checklist_id = ?", c.Param("itemId"), checklist.ID).First(&item)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch item"})
		}
		return
	}

	var req ChecklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil && *req.Name != "" {
		item.Name = *req.Name
	}
	if req.Quantity != nil && *req.Quantity > 0 {
		item.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil && *req.UnitPrice >= 0 {
		item.UnitPrice = *req.UnitPrice
	}
	if req.Done != nil {
		item.Done = *req.Done
	}

	if err := database.GetDB().Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteChecklistItem handles DELETE /api/checklists/:id/items/:itemId
func DeleteChecklistItem(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	checklist, ok := loadOwnedChecklist(c, userID, c.Param("id"), false)
	if !ok {
		return
	}

	itemID := c.Param("itemId")
	result := database.GetDB().Where("id = ? AND checklist_id = ?", itemID, checklist.ID).
		Delete(&models.ChecklistItem{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item deleted successfully",
		"id":      itemID,
	})
}
