package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"civicconnect-be/store"
)

// CleanupResult summarizes one retention sweep.
type CleanupResult struct {
	Deleted  int64    `json:"deleted"`
	IssueIDs []string `json:"issueIds,omitempty"`
	Message  string   `json:"message"`
}

// CleanupService deletes resolved issues that have aged past the
// retention window.
type CleanupService struct {
	store  store.IssueStore
	policy RetentionPolicy
	logger *slog.Logger
}

func NewCleanupService(s store.IssueStore, policy RetentionPolicy, logger *slog.Logger) *CleanupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanupService{store: s, policy: policy, logger: logger}
}

// Policy exposes the retention policy driving the sweep.
func (s *CleanupService) Policy() RetentionPolicy {
	return s.policy
}

// DeleteOldResolvedIssues removes every issue eligible at now. The id
// enumeration is best-effort audit logging; its failure never blocks the
// deletion itself.
func (s *CleanupService) DeleteOldResolvedIssues(ctx context.Context, now time.Time) (*CleanupResult, error) {
	predicate := s.policy.EligiblePredicate(now)

	var issueIDs []string
	ids, err := s.store.IDs(ctx, predicate)
	if err != nil {
		s.logger.Warn("could not enumerate issues eligible for cleanup", "error", err)
	} else {
		for _, id := range ids {
			issueIDs = append(issueIDs, id.Hex())
		}
	}

	deleted, err := s.store.DeleteMany(ctx, predicate)
	if err != nil {
		return nil, &StorageError{Op: "deleteMany", Err: err}
	}

	result := &CleanupResult{
		Deleted:  deleted,
		IssueIDs: issueIDs,
		Message:  fmt.Sprintf("deleted %d resolved issue(s) past the retention window", deleted),
	}
	if deleted == 0 {
		result.Message = "no resolved issues past the retention window"
	}

	s.logger.Info("retention sweep finished",
		"deleted", result.Deleted,
		"cutoff", s.policy.Cutoff(now),
		"issueIds", result.IssueIDs,
	)
	return result, nil
}

// Stats reports how many issues are currently eligible and the cutoff
// they were measured against.
func (s *CleanupService) Stats(ctx context.Context, now time.Time) (int64, time.Time, error) {
	cutoff := s.policy.Cutoff(now)
	count, err := s.store.Count(ctx, s.policy.EligiblePredicate(now))
	if err != nil {
		return 0, cutoff, &StorageError{Op: "count", Err: err}
	}
	return count, cutoff, nil
}
