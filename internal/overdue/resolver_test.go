package overdue

import (
	"testing"

	"productivity-api/internal/models"
	"productivity-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedThreshold(t *testing.T, db *gorm.DB, userID string, projectID *string, priority models.TaskPriority, days float64) {
	t.Helper()
	require.NoError(t, db.Create(&models.Threshold{
		ID:          uuid.New().String(),
		UserID:      userID,
		ProjectID:   projectID,
		Priority:    priority,
		AllowedDays: days,
	}).Error)
}

func strPtr(s string) *string { return &s }

func TestResolve_SystemDefaults(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	r := NewResolver(NewGormStores(db))

	require.Equal(t, 1.0, r.Resolve("u-1", models.PriorityHigh, ""))
	require.Equal(t, 3.0, r.Resolve("u-1", models.PriorityMedium, ""))
	require.Equal(t, 7.0, r.Resolve("u-1", models.PriorityLow, ""))
}

func TestResolve_GlobalOverride(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	seedThreshold(t, db, "u-1", nil, models.PriorityHigh, 4)
	r := NewResolver(NewGormStores(db))

	// Global override applies with and without a project
	require.Equal(t, 4.0, r.Resolve("u-1", models.PriorityHigh, ""))
	require.Equal(t, 4.0, r.Resolve("u-1", models.PriorityHigh, "proj-x"))

	// Other priorities and other users still get system defaults
	require.Equal(t, 3.0, r.Resolve("u-1", models.PriorityMedium, ""))
	require.Equal(t, 1.0, r.Resolve("u-2", models.PriorityHigh, ""))
}

func TestResolve_ProjectOverridePrecedence(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	seedThreshold(t, db, "u-1", strPtr("proj-x"), models.PriorityHigh, 10)
	seedThreshold(t, db, "u-1", nil, models.PriorityHigh, 4)
	r := NewResolver(NewGormStores(db))

	// Project-specific beats global for that project
	require.Equal(t, 10.0, r.Resolve("u-1", models.PriorityHigh, "proj-x"))
	// A project with no override falls back to the global one
	require.Equal(t, 4.0, r.Resolve("u-1", models.PriorityHigh, "proj-y"))
	// No project falls back to global too
	require.Equal(t, 4.0, r.Resolve("u-1", models.PriorityHigh, ""))
}

func TestEffectiveDays_FirstMatchWinsOnDuplicates(t *testing.T) {
	overrides := []models.Threshold{
		{UserID: "u-1", Priority: models.PriorityHigh, AllowedDays: 2},
		{UserID: "u-1", Priority: models.PriorityHigh, AllowedDays: 9},
	}
	require.Equal(t, 2.0, EffectiveDays(overrides, models.PriorityHigh, ""))
}

func TestDefaultDays_UnknownPriority(t *testing.T) {
	require.Equal(t, 3.0, DefaultDays(models.TaskPriority("urgent")))
}
