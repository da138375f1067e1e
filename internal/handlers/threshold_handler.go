package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"productivity-api/internal/cache"
	"productivity-api/internal/database"
	"productivity-api/internal/models"
	"productivity-api/internal/overdue"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// thresholdCache keeps a user's override list warm for the effective
// threshold read path, which the UI polls on every board render. Write
// paths invalidate the entry; the scanner never reads this cache.
var thresholdCache = cache.New[string, []models.Threshold]()

const thresholdCacheTTL = 30 * time.Second

// UpsertThresholdRequest represents the payload for setting an override.
// A nil projectId sets the user's global default for the priority.
type UpsertThresholdRequest struct {
	ProjectID   *string             `json:"projectId"`
	Priority    models.TaskPriority `json:"priority" binding:"required"`
	AllowedDays *float64            `json:"allowedDays" binding:"required"`
}

func cachedThresholds(userID string) ([]models.Threshold, error) {
	if overrides, ok := thresholdCache.Get(userID); ok {
		return overrides, nil
	}
	var overrides []models.Threshold
	if err := database.GetDB().Where("user_id = ?", userID).Find(&overrides).Error; err != nil {
		return nil, err
	}
	thresholdCache.Set(userID, overrides, thresholdCacheTTL)
	return overrides, nil
}

// GetThresholds handles GET /api/thresholds
// Lists the authenticated user's override records.
func GetThresholds(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var thresholds []models.Threshold
	if err := database.GetDB().Where("user_id = ?", userID).Find(&thresholds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thresholds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"thresholds": thresholds,
		"count":      len(thresholds),
	})
}

// UpsertThreshold handles PUT /api/thresholds
// Creates or updates the override for (user, project-or-null, priority).
// Upserting at the write boundary keeps the tuple unique so the resolver
// never has to break ties.
func UpsertThreshold(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req UpsertThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPriority(req.Priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid priority %q", req.Priority)})
		return
	}
	if *req.AllowedDays < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "allowedDays must be >= 0"})
		return
	}

	var projectID *string
	if req.ProjectID != nil {
		trimmed := strings.TrimSpace(*req.ProjectID)
		if trimmed != "" {
			if !validateProjectOwnership(c, userID, trimmed) {
				return
			}
			projectID = &trimmed
		}
	}

	db := database.GetDB()
	query := db.Where("user_id = ? AND priority = ?", userID, req.Priority)
	if projectID == nil {
		query = query.Where("project_id IS NULL")
	} else {
		query = query.Where("project_id = ?", *projectID)
	}

	var threshold models.Threshold
	err := query.First(&threshold).Error
	switch {
	case err == nil:
		threshold.AllowedDays = *req.AllowedDays
		if err := db.Save(&threshold).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update threshold"})
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		threshold = models.Threshold{
			ID:          uuid.New().String(),
			UserID:      userID,
			ProjectID:   projectID,
			Priority:    req.Priority,
			AllowedDays: *req.AllowedDays,
		}
		if err := db.Create(&threshold).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create threshold"})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch threshold"})
		return
	}

	thresholdCache.Delete(userID)

	c.JSON(http.StatusOK, threshold)
}

// DeleteThreshold handles DELETE /api/thresholds/:id
// Removes an override owned by the authenticated user.
func DeleteThreshold(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	thresholdID := c.Param("id")
	if thresholdID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Threshold ID is required"})
		return
	}

	var threshold models.Threshold
	result := database.GetDB().Where("id = ? AND user_id = ?", thresholdID, userID).First(&threshold)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Threshold not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch threshold"})
		}
		return
	}

	if err := database.GetDB().Delete(&threshold).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete threshold"})
		return
	}

	thresholdCache.Delete(userID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Threshold deleted successfully",
		"id":      thresholdID,
	})
}

// GetEffectiveThreshold handles GET /api/thresholds/effective
// Returns the allowed open days in effect for a priority and optional
// project, applying the same precedence as the overdue scanner.
func GetEffectiveThreshold(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	priority := models.TaskPriority(c.Query("priority"))
	if !models.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid priority query param is required"})
		return
	}
	projectID := c.Query("projectId")

	overrides, err := cachedThresholds(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch thresholds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"priority":    priority,
		"projectId":   projectID,
		"allowedDays": overdue.EffectiveDays(overrides, priority, projectID),
	})
}
