package overdue

import (
	"productivity-api/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaskSource lists open tasks across all users. The engine never mutates
// tasks.
type TaskSource interface {
	ListOpenTasks() ([]models.Task, error)
}

// ThresholdSource lists a user's threshold override records.
type ThresholdSource interface {
	ListThresholds(userID string) ([]models.Threshold, error)
}

// NotificationStore reads and writes notification records for the engine.
type NotificationStore interface {
	ListUnread(userID, notificationType string) ([]models.Notification, error)
	Insert(n *models.Notification) error
}

// GormStores backs all three engine stores with a gorm handle. Handlers
// use the global database.DB; the engine takes the handle explicitly so
// tests can point it at an in-memory database.
type GormStores struct {
	db *gorm.DB
}

// NewGormStores wraps a gorm handle.
func NewGormStores(db *gorm.DB) *GormStores {
	return &GormStores{db: db}
}

// ListOpenTasks returns every task whose status is not done, across users.
func (s *GormStores) ListOpenTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("status <> ?", models.StatusDone).Find(&tasks).Error
	return tasks, err
}

// ListThresholds returns all override records for a user.
func (s *GormStores) ListThresholds(userID string) ([]models.Threshold, error) {
	var thresholds []models.Threshold
	err := s.db.Where("user_id = ?", userID).Find(&thresholds).Error
	return thresholds, err
}

// ListUnread returns a user's unread notifications of the given type.
func (s *GormStores) ListUnread(userID, notificationType string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.Where("user_id = ? AND type = ? AND read = ?", userID, notificationType, false).
		Find(&notifications).Error
	return notifications, err
}

// Insert persists a notification, assigning an ID if the caller left it
// empty.
func (s *GormStores) Insert(n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return s.db.Create(n).Error
}
