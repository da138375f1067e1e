package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"productivity-api/internal/auth"
	"productivity-api/internal/database"
	"productivity-api/internal/middleware"
	"productivity-api/internal/models"
	"productivity-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupTaskRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.GET("/tasks", GetTasks)
	api.POST("/tasks", CreateTask)
	api.GET("/tasks/:id", GetTaskByID)
	api.PUT("/tasks/:id", UpdateTask)
	api.PATCH("/tasks/:id/status", UpdateTaskStatus)
	api.DELETE("/tasks/:id", DeleteTask)
	api.GET("/stats", GetStats)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)
	return r, token
}

func doJSON(r *gin.Engine, method, path, token string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, _ := json.Marshal(payload)
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTask_Success(t *testing.T) {
	r, token := setupTaskRouter(t)

	w := doJSON(r, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":       "Write weekly report",
		"description": "Summary for the team",
		"priority":    "high",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	require.Equal(t, models.StatusTodo, created.Status)
	require.Equal(t, models.PriorityHigh, created.Priority)
}

func TestCreateTask_InvalidPriority(t *testing.T) {
	r, token := setupTaskRouter(t)

	w := doJSON(r, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":    "Bad one",
		"priority": "urgent",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTask_UnknownProjectRejected(t *testing.T) {
	r, token := setupTaskRouter(t)

	w := doJSON(r, http.MethodPost, "/api/tasks", token, map[string]any{
		"title":     "Linked task",
		"projectId": "no-such-project",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTaskStatus(t *testing.T) {
	r, token := setupTaskRouter(t)

	w := doJSON(r, http.MethodPost, "/api/tasks", token, map[string]any{"title": "Move me"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(r, http.MethodPatch, "/api/tasks/"+created.ID+"/status", token, map[string]any{
		"status": "in-progress",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var task models.Task
	require.NoError(t, database.GetDB().Where("id = ?", created.ID).First(&task).Error)
	require.Equal(t, models.StatusInProgress, task.Status)
}

func TestGetTasks_ScopedToUser(t *testing.T) {
	r, token := setupTaskRouter(t)

	// another user's task must never appear
	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "t-other", Title: "Not yours", Status: models.StatusTodo, UserID: "u-2",
	}).Error)

	w := doJSON(r, http.MethodPost, "/api/tasks", token, map[string]any{"title": "Mine"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/tasks", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tasks []models.Task `json:"tasks"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Tasks, 1)
	require.Equal(t, "Mine", resp.Tasks[0].Title)
}

func TestDeleteTask_NotFoundForOtherUser(t *testing.T) {
	r, token := setupTaskRouter(t)

	require.NoError(t, database.GetDB().Create(&models.Task{
		ID: "t-other", Title: "Not yours", Status: models.StatusTodo, UserID: "u-2",
	}).Error)

	w := doJSON(r, http.MethodDelete, "/api/tasks/t-other", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetStats(t *testing.T) {
	r, token := setupTaskRouter(t)

	for _, status := range []models.TaskStatus{models.StatusTodo, models.StatusTodo, models.StatusDone} {
		w := doJSON(r, http.MethodPost, "/api/tasks", token, map[string]any{
			"title":  "Task",
			"status": status,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(r, http.MethodGet, "/api/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Todo  int64 `json:"todo"`
		Done  int64 `json:"done"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(2), stats.Todo)
	require.Equal(t, int64(1), stats.Done)
	require.Equal(t, int64(3), stats.Total)
}
