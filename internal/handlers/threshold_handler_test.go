package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"productivity-api/internal/auth"
	"productivity-api/internal/database"
	"productivity-api/internal/middleware"
	"productivity-api/internal/models"
	"productivity-api/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func setupThresholdRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	database.DB = db
	thresholdCache.Clear()

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.GET("/thresholds", GetThresholds)
	api.PUT("/thresholds", UpsertThreshold)
	api.DELETE("/thresholds/:id", DeleteThreshold)
	api.GET("/thresholds/effective", GetEffectiveThreshold)
	api.POST("/projects", CreateProject)

	token, err := auth.GenerateToken("u-1", "alice")
	require.NoError(t, err)
	return r, token
}

type effectiveResponse struct {
	Priority    string  `json:"priority"`
	ProjectID   string  `json:"projectId"`
	AllowedDays float64 `json:"allowedDays"`
}

func getEffective(t *testing.T, r *gin.Engine, token, query string) effectiveResponse {
	t.Helper()
	w := doJSON(r, http.MethodGet, "/api/thresholds/effective?"+query, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp effectiveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetEffectiveThreshold_SystemDefaults(t *testing.T) {
	r, token := setupThresholdRouter(t)

	require.Equal(t, 1.0, getEffective(t, r, token, "priority=high").AllowedDays)
	require.Equal(t, 3.0, getEffective(t, r, token, "priority=medium").AllowedDays)
	require.Equal(t, 7.0, getEffective(t, r, token, "priority=low").AllowedDays)
}

func TestUpsertThreshold_GlobalThenProject(t *testing.T) {
	r, token := setupThresholdRouter(t)

	// set a global high override
	w := doJSON(r, http.MethodPut, "/api/thresholds", token, map[string]any{
		"priority":    "high",
		"allowedDays": 4,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 4.0, getEffective(t, r, token, "priority=high").AllowedDays)

	// add a project and a project-scoped override that wins for it
	w = doJSON(r, http.MethodPost, "/api/projects", token, map[string]any{"name": "Launch"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	w = doJSON(r, http.MethodPut, "/api/thresholds", token, map[string]any{
		"projectId":   project.ID,
		"priority":    "high",
		"allowedDays": 10,
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, 10.0, getEffective(t, r, token, "priority=high&projectId="+project.ID).AllowedDays)
	// other projects still see the global override
	require.Equal(t, 4.0, getEffective(t, r, token, "priority=high&projectId=elsewhere").AllowedDays)
}

func TestUpsertThreshold_UpdatesInPlace(t *testing.T) {
	r, token := setupThresholdRouter(t)

	for _, days := range []float64{2, 5} {
		w := doJSON(r, http.MethodPut, "/api/thresholds", token, map[string]any{
			"priority":    "medium",
			"allowedDays": days,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// upsert keeps the (user, project-or-null, priority) tuple unique
	var count int64
	require.NoError(t, database.GetDB().Model(&models.Threshold{}).
		Where("user_id = ? AND priority = ?", "u-1", "medium").Count(&count).Error)
	require.Equal(t, int64(1), count)
	require.Equal(t, 5.0, getEffective(t, r, token, "priority=medium").AllowedDays)
}

func TestUpsertThreshold_NegativeDaysRejected(t *testing.T) {
	r, token := setupThresholdRouter(t)

	w := doJSON(r, http.MethodPut, "/api/thresholds", token, map[string]any{
		"priority":    "high",
		"allowedDays": -1,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteThreshold_RestoresDefault(t *testing.T) {
	r, token := setupThresholdRouter(t)

	w := doJSON(r, http.MethodPut, "/api/thresholds", token, map[string]any{
		"priority":    "high",
		"allowedDays": 9,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var threshold models.Threshold
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &threshold))

	w = doJSON(r, http.MethodDelete, "/api/thresholds/"+threshold.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.Equal(t, 1.0, getEffective(t, r, token, "priority=high").AllowedDays)
}

func TestGetEffectiveThreshold_InvalidPriority(t *testing.T) {
	r, token := setupThresholdRouter(t)

	w := doJSON(r, http.MethodGet, "/api/thresholds/effective?priority=urgent", token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}
