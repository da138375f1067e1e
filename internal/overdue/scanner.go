package overdue

import (
	"fmt"
	"log"
	"math"
	"time"

	"productivity-api/internal/models"
	"productivity-api/internal/realtime"
)

// atRiskFraction is the share of the threshold after which an open task
// is flagged as at risk of going overdue.
const atRiskFraction = 0.8

const hoursPerDay = 24

// classification of a single open task against its effective threshold.
type classification int

const (
	healthy classification = iota
	atRisk
	overdue
)

// classify applies the boundary rules: strictly past the threshold is
// overdue, strictly past 80% of it is at risk. Sitting exactly on either
// boundary does not trip it.
func classify(daysOpen, threshold float64) classification {
	switch {
	case daysOpen > threshold:
		return overdue
	case daysOpen > threshold*atRiskFraction:
		return atRisk
	default:
		return healthy
	}
}

// Scanner is the periodic job that flags overdue and at-risk tasks. It
// reads tasks and thresholds, writes notifications, and nothing else.
// All state lives in the store; nothing is carried between runs.
type Scanner struct {
	tasks         TaskSource
	thresholds    ThresholdSource
	notifications NotificationStore
	hub           *realtime.Hub

	now func() time.Time
}

// NewScanner wires a scanner to its stores. hub may be nil when realtime
// push is not wanted (tests, one-off runs).
func NewScanner(tasks TaskSource, thresholds ThresholdSource, notifications NotificationStore, hub *realtime.Hub) *Scanner {
	return &Scanner{
		tasks:         tasks,
		thresholds:    thresholds,
		notifications: notifications,
		hub:           hub,
		now:           time.Now,
	}
}

// RunScan classifies every open task for every user and returns the
// number of notifications created. A failure while processing one user
// is logged and does not stop the scan for the others.
func (s *Scanner) RunScan() int {
	tasks, err := s.tasks.ListOpenTasks()
	if err != nil {
		log.Println("overdue: load open tasks:", err)
		return 0
	}

	byUser := make(map[string][]models.Task)
	for _, t := range tasks {
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}

	created := 0
	for userID, userTasks := range byUser {
		n, err := s.scanUser(userID, userTasks)
		created += n
		if err != nil {
			log.Printf("overdue: scan user %s: %v", userID, err)
		}
	}
	return created
}

// scanUser processes one user's open tasks. It loads the user's override
// records and unread notification sets once up front, then classifies
// each task independently. Returns the number of notifications created
// even when it also returns an error.
func (s *Scanner) scanUser(userID string, tasks []models.Task) (int, error) {
	overrides, err := s.thresholds.ListThresholds(userID)
	if err != nil {
		return 0, fmt.Errorf("load thresholds: %w", err)
	}

	unreadOverdue, err := s.notifications.ListUnread(userID, models.NotificationTaskOverdue)
	if err != nil {
		return 0, fmt.Errorf("load overdue notifications: %w", err)
	}
	unreadAtRisk, err := s.notifications.ListUnread(userID, models.NotificationTaskAtRisk)
	if err != nil {
		return 0, fmt.Errorf("load at-risk notifications: %w", err)
	}

	overdueTaskIDs := taskIDSet(unreadOverdue)
	atRiskTaskIDs := taskIDSet(unreadAtRisk)

	now := s.now()
	created := 0
	for _, task := range tasks {
		// An unread overdue notification suppresses all further activity
		// for the task until the user reads or deletes it.
		if _, ok := overdueTaskIDs[task.ID]; ok {
			continue
		}

		threshold := EffectiveDays(overrides, task.Priority, task.ProjectID)
		daysOpen := now.Sub(task.CreatedAt).Hours() / hoursPerDay

		switch classify(daysOpen, threshold) {
		case overdue:
			n := &models.Notification{
				UserID: userID,
				Type:   models.NotificationTaskOverdue,
				Title:  "Task Overdue: " + task.Title,
				Message: fmt.Sprintf("%s priority task has been open for %d days (threshold: %g days)",
					task.Priority, int(math.Floor(daysOpen)), threshold),
				TaskID: task.ID,
			}
			if err := s.notifications.Insert(n); err != nil {
				return created, fmt.Errorf("insert overdue notification: %w", err)
			}
			s.publish(n)
			created++
		case atRisk:
			// At most one at-risk notification per task while the previous
			// one is still unread.
			if _, ok := atRiskTaskIDs[task.ID]; ok {
				continue
			}
			remaining := int(math.Ceil(threshold - daysOpen))
			n := &models.Notification{
				UserID: userID,
				Type:   models.NotificationTaskAtRisk,
				Title:  "Task At Risk: " + task.Title,
				Message: fmt.Sprintf("%s priority task will exceed its threshold in %d days",
					task.Priority, remaining),
				TaskID: task.ID,
			}
			if err := s.notifications.Insert(n); err != nil {
				return created, fmt.Errorf("insert at-risk notification: %w", err)
			}
			s.publish(n)
			created++
		}
	}
	return created, nil
}

func (s *Scanner) publish(n *models.Notification) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(realtime.Event{
		Type:           "notification_created",
		NotificationID: n.ID,
		TaskID:         n.TaskID,
		UserID:         n.UserID,
	})
}

func taskIDSet(notifications []models.Notification) map[string]struct{} {
	set := make(map[string]struct{}, len(notifications))
	for _, n := range notifications {
		if n.TaskID != "" {
			set[n.TaskID] = struct{}{}
		}
	}
	return set
}
