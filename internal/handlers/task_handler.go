package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"productivity-api/internal/database"
	"productivity-api/internal/models"
	"productivity-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	ProjectID     string              `json:"projectId"`
	ScheduledDate string              `json:"scheduledDate"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Title         *string              `json:"title"`
	Description   *string              `json:"description"`
	Status        *models.TaskStatus   `json:"status"`
	Priority      *models.TaskPriority `json:"priority"`
	ProjectID     *string              `json:"projectId"`
	ScheduledDate *string              `json:"scheduledDate"`
}

// UpdateTaskStatusRequest represents a minimal request to change status
type UpdateTaskStatusRequest struct {
	Status models.TaskStatus `json:"status" binding:"required"`
}

// validateProjectOwnership checks that the referenced project exists and
// belongs to the user. Returns false after writing the error response.
func validateProjectOwnership(c *gin.Context, userID, projectID string) bool {
	var project models.Project
	err := database.GetDB().Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid projectId: project not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate projectId"})
		}
		return false
	}
	return true
}

/*
*
GetTasks handles GET /api/tasks
Returns the authenticated user's tasks.
Query params: page (default 1), limit (default 20), sort (asc|desc on
created_at, default desc), status, projectId, scheduledDate.
*/
func GetTasks(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	pageStr := c.DefaultQuery("page", "1")
	limitStr := c.DefaultQuery("limit", "20")
	sortParam := strings.ToLower(c.DefaultQuery("sort", "desc"))

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := (page - 1) * limit

	order := "created_at desc"
	if sortParam == "asc" {
		order = "created_at asc"
	}

	query := database.GetDB().Model(&models.Task{}).Where("user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if projectID := c.Query("projectId"); projectID != "" {
		query = query.Where("project_id = ?", projectID)
	}
	if scheduled := c.Query("scheduledDate"); scheduled != "" {
		query = query.Where("scheduled_date = ?", scheduled)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count tasks"})
		return
	}

	var tasks []models.Task
	result := query.Session(&gorm.Session{}).Order(order).Limit(limit).Offset(offset).Find(&tasks)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
		"total": total,
		"page":  page,
		"limit": limit,
		"sort":  sortParam,
	})
}

/*
*
CreateTask handles POST /api/tasks
Creates a new task for the authenticated user
*/
func CreateTask(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	if !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid status %q", status)})
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid priority %q", priority)})
		return
	}

	projectID := strings.TrimSpace(req.ProjectID)
	if projectID != "" && !validateProjectOwnership(c, userID, projectID) {
		return
	}

	task := models.Task{
		ID:            uuid.New().String(),
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		ProjectID:     projectID,
		ScheduledDate: req.ScheduledDate,
		UserID:        userID,
	}

	if err := database.GetDB().Create(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	realtime.GetHub().Publish(realtime.Event{Type: "task_created", TaskID: task.ID, UserID: userID})

	c.JSON(http.StatusCreated, task)
}

// GetTaskByID handles GET /api/tasks/:id
// Returns a single task owned by the authenticated user
func GetTaskByID(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	var task models.Task
	result := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PUT /api/tasks/:id
// Updates a task owned by the authenticated user
func UpdateTask(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	var existingTask models.Task
	result := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&existingTask)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title != nil {
		existingTask.Title = *req.Title
	}
	if req.Description != nil {
		existingTask.Description = *req.Description
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid status %q", *req.Status)})
			return
		}
		existingTask.Status = *req.Status
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid priority %q", *req.Priority)})
			return
		}
		existingTask.Priority = *req.Priority
	}
	if req.ProjectID != nil {
		projectID := strings.TrimSpace(*req.ProjectID)
		if projectID != "" && !validateProjectOwnership(c, userID, projectID) {
			return
		}
		existingTask.ProjectID = projectID
	}
	if req.ScheduledDate != nil {
		existingTask.ScheduledDate = *req.ScheduledDate
	}

	if err := database.GetDB().Save(&existingTask).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	realtime.GetHub().Publish(realtime.Event{Type: "task_updated", TaskID: existingTask.ID, UserID: userID})

	c.JSON(http.StatusOK, existingTask)
}

// UpdateTaskStatus handles PATCH /api/tasks/:id/status
// Updates only the status of a task owned by the authenticated user
func UpdateTaskStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid status %q", req.Status)})
		return
	}

	var task models.Task
	result := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	// Explicitly update only the status column to ensure persistence
	task.Status = req.Status
	if err := database.GetDB().Model(&task).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		return
	}

	realtime.GetHub().Publish(realtime.Event{Type: "task_status_changed", TaskID: task.ID, UserID: userID})

	c.JSON(http.StatusOK, task)
}

// DeleteTask handles DELETE /api/tasks/:id
// Deletes a task owned by the authenticated user
func DeleteTask(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	taskID := c.Param("id")
	if taskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task ID is required"})
		return
	}

	var task models.Task
	result := database.GetDB().Where("id = ? AND user_id = ?", taskID, userID).First(&task)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		}
		return
	}

	if err := database.GetDB().Delete(&task).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	realtime.GetHub().Publish(realtime.Event{Type: "task_deleted", TaskID: taskID, UserID: userID})

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// GetStats handles GET /api/stats
// Returns counts of the authenticated user's tasks by status.
func GetStats(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in token"})
		return
	}

	type row struct {
		Status string
		Count  int64
	}

	var rows []row
	if err := database.GetDB().Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	counts := map[string]int64{
		string(models.StatusTodo):       0,
		string(models.StatusInProgress): 0,
		string(models.StatusReview):     0,
		string(models.StatusDone):       0,
	}
	var total int64
	for _, r := range rows {
		counts[r.Status] = r.Count
		total += r.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"todo":       counts[string(models.StatusTodo)],
		"inProgress": counts[string(models.StatusInProgress)],
		"review":     counts[string(models.StatusReview)],
		"done":       counts[string(models.StatusDone)],
		"total":      total,
	})
}
