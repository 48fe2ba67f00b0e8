package services_test

import (
	"testing"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/services"
)

func resolvedIssue(resolvedAt time.Time) models.Issue {
	issue := seedIssues(1)[0]
	issue.Status = models.StatusResolved
	issue.ResolvedAt = &resolvedAt
	return issue
}

func TestRetentionCutoffIsFiveDaysByDefault(t *testing.T) {
	now := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)

	policy := services.NewRetentionPolicy(0)
	want := time.Date(2024, 1, 5, 3, 0, 0, 0, time.UTC)
	if got := policy.Cutoff(now); !got.Equal(want) {
		t.Errorf("cutoff = %v, want %v", got, want)
	}

	custom := services.NewRetentionPolicy(48 * time.Hour)
	if got := custom.Cutoff(now); !got.Equal(now.Add(-48*time.Hour)) {
		t.Errorf("custom cutoff = %v", got)
	}
}

func TestRetentionBoundaryIsInclusive(t *testing.T) {
	now := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	policy := services.NewRetentionPolicy(0)
	eligible := policy.EligiblePredicate(now)

	atBoundary := resolvedIssue(now.Add(-5 * 24 * time.Hour))
	if !eligible.Matches(atBoundary) {
		t.Error("issue resolved exactly five days ago must be eligible")
	}

	justInside := resolvedIssue(now.Add(-5*24*time.Hour + time.Second))
	if eligible.Matches(justInside) {
		t.Error("issue one second inside the window must not be eligible")
	}

	older := resolvedIssue(now.Add(-30 * 24 * time.Hour))
	if !eligible.Matches(older) {
		t.Error("issue resolved long ago must be eligible")
	}
}

func TestRetentionIgnoresUnresolvedAndMissingTimestamps(t *testing.T) {
	now := time.Date(2024, 1, 10, 3, 0, 0, 0, time.UTC)
	eligible := services.NewRetentionPolicy(0).EligiblePredicate(now)

	// Resolved and reverted to escalated: no longer eligible even though
	// resolvedAt is old.
	reverted := resolvedIssue(now.Add(-10 * 24 * time.Hour))
	reverted.Status = models.StatusEscalated
	if eligible.Matches(reverted) {
		t.Error("issue reverted out of resolved must not be eligible")
	}

	// Resolved but resolvedAt was never written.
	broken := seedIssues(1)[0]
	broken.Status = models.StatusResolved
	if eligible.Matches(broken) {
		t.Error("resolved issue without resolvedAt must not be eligible")
	}

	open := seedIssues(1)[0]
	if eligible.Matches(open) {
		t.Error("open issue must not be eligible")
	}
}
