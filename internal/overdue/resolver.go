package overdue

import (
	"log"

	"productivity-api/internal/models"
)

// System default allowed open days per priority. These apply when a user
// has no override at any level.
const (
	DefaultHighDays   float64 = 1
	DefaultMediumDays float64 = 3
	DefaultLowDays    float64 = 7
)

// DefaultDays returns the compiled-in allowed open days for a priority.
// Unknown priorities fall back to the medium default, matching the task
// model's default priority.
func DefaultDays(priority models.TaskPriority) float64 {
	switch priority {
	case models.PriorityHigh:
		return DefaultHighDays
	case models.PriorityLow:
		return DefaultLowDays
	default:
		return DefaultMediumDays
	}
}

// EffectiveDays applies override precedence to a preloaded list:
// project-specific override, then the user's global override, then the
// system default. If duplicate rows exist for a tuple, the first match
// wins.
func EffectiveDays(overrides []models.Threshold, priority models.TaskPriority, projectID string) float64 {
	if projectID != "" {
		for _, t := range overrides {
			if t.Priority == priority && t.ProjectID != nil && *t.ProjectID == projectID {
				return t.AllowedDays
			}
		}
	}
	for _, t := range overrides {
		if t.Priority == priority && t.ProjectID == nil {
			return t.AllowedDays
		}
	}
	return DefaultDays(priority)
}

// Resolver computes effective thresholds for standalone read paths (the
// scanner applies the same precedence over its own preloaded list).
type Resolver struct {
	thresholds ThresholdSource
}

// NewResolver builds a resolver over a threshold source.
func NewResolver(thresholds ThresholdSource) *Resolver {
	return &Resolver{thresholds: thresholds}
}

// Resolve returns the effective allowed open days for a user, priority
// and optional project (empty projectID means no project). It never
// fails: a load error is logged and the system default returned.
func (r *Resolver) Resolve(userID string, priority models.TaskPriority, projectID string) float64 {
	overrides, err := r.thresholds.ListThresholds(userID)
	if err != nil {
		log.Printf("overdue: load thresholds for user %s: %v", userID, err)
		return DefaultDays(priority)
	}
	return EffectiveDays(overrides, priority, projectID)
}
