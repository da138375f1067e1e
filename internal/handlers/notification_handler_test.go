package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"productivity-api/internal/auth"
	"productivity-api/internal/database"
	"productivity-api/internal/middleware"
	"productivity-api/internal/models"
	"productivity-api/internal/overdue"
	"productivity-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func setupNotificationRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.GET("/notifications", GetNotifications)
	api.PATCH("/notifications/:id/read", MarkNotificationRead)
	api.POST("/notifications/read-all", MarkAllNotificationsRead)
	api.DELETE("/notifications/:id", DeleteNotification)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)
	return r, token
}

func seedNotification(t *testing.T, userID, notificationType string, read bool) models.Notification {
	t.Helper()
	n := models.Notification{
		ID:      uuid.New().String(),
		UserID:  userID,
		Type:    notificationType,
		Title:   "Task Overdue: something",
		Message: "high priority task has been open for 2 days (threshold: 1 days)",
		Read:    read,
	}
	require.NoError(t, database.GetDB().Create(&n).Error)
	return n
}

type notificationListResponse struct {
	Notifications []models.Notification `json:"notifications"`
	Count         int                   `json:"count"`
	Unread        int                   `json:"unread"`
}

func TestGetNotifications(t *testing.T) {
	r, token := setupNotificationRouter(t)
	seedNotification(t, "u-1", models.NotificationTaskOverdue, false)
	seedNotification(t, "u-1", models.NotificationTaskAtRisk, true)
	seedNotification(t, "u-2", models.NotificationTaskOverdue, false)

	w := doJSON(r, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp notificationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	require.Equal(t, 1, resp.Unread)

	w = doJSON(r, http.MethodGet, "/api/notifications?unread=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
}

func TestMarkNotificationRead_ReArmsScanner(t *testing.T) {
	r, token := setupNotificationRouter(t)

	// an overdue task notified once stays quiet while unread
	stores := overdue.NewGormStores(database.GetDB())
	scanner := overdue.NewScanner(stores, stores, stores, nil)
	task := models.Task{
		ID:       uuid.New().String(),
		Title:    "Stale task",
		Status:   models.StatusTodo,
		Priority: models.PriorityHigh,
		UserID:   "u-1",
	}
	task.CreatedAt = time.Now().Add(-48 * time.Hour)
	require.NoError(t, database.GetDB().Create(&task).Error)

	require.Equal(t, 1, scanner.RunScan())
	require.Equal(t, 0, scanner.RunScan())

	var n models.Notification
	require.NoError(t, database.GetDB().Where("user_id = ?", "u-1").First(&n).Error)

	w := doJSON(r, http.MethodPatch, "/api/notifications/"+n.ID+"/read", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// acknowledged, so the still-overdue task is raised again
	require.Equal(t, 1, scanner.RunScan())
}

func TestMarkAllNotificationsRead(t *testing.T) {
	r, token := setupNotificationRouter(t)
	seedNotification(t, "u-1", models.NotificationTaskOverdue, false)
	seedNotification(t, "u-1", models.NotificationTaskAtRisk, false)

	w := doJSON(r, http.MethodPost, "/api/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, database.GetDB().Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", "u-1", false).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestDeleteNotification_OwnershipEnforced(t *testing.T) {
	r, token := setupNotificationRouter(t)
	other := seedNotification(t, "u-2", models.NotificationTaskOverdue, false)

	w := doJSON(r, http.MethodDelete, "/api/notifications/"+other.ID, token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
