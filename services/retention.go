package services

import (
	"time"

	"civicconnect-be/models"
	"civicconnect-be/query"
)

// DefaultRetentionWindow is how long resolved issues are kept before the
// cleanup job may delete them.
const DefaultRetentionWindow = 5 * 24 * time.Hour

// RetentionPolicy is the single place the "resolved issues are deleted N
// days after resolution" rule lives, so it can be tested apart from the
// scheduler.
type RetentionPolicy struct {
	Window time.Duration
}

// NewRetentionPolicy builds a policy; a non-positive window falls back to
// the default.
func NewRetentionPolicy(window time.Duration) RetentionPolicy {
	if window <= 0 {
		window = DefaultRetentionWindow
	}
	return RetentionPolicy{Window: window}
}

// Cutoff returns the resolution timestamp at or before which an issue
// becomes eligible for deletion.
func (p RetentionPolicy) Cutoff(now time.Time) time.Time {
	return now.Add(-p.Window)
}

// EligiblePredicate matches issues that are resolved right now, carry a
// resolvedAt value, and were resolved at or before the cutoff (inclusive).
// Resolved issues missing resolvedAt are a data integrity violation and
// are never eligible.
func (p RetentionPolicy) EligiblePredicate(now time.Time) query.Predicate {
	return query.And(
		query.Eq("status", string(models.StatusResolved)),
		query.Exists("resolvedAt"),
		query.Lte("resolvedAt", p.Cutoff(now)),
	)
}
