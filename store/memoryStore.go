package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"civicconnect-be/models"
	"civicconnect-be/query"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryIssueStore evaluates predicate trees against issues held in
// memory. It backs the test suites and local development without a
// running MongoDB.
type MemoryIssueStore struct {
	mu     sync.Mutex
	issues []models.Issue
}

func NewMemoryIssueStore(issues ...models.Issue) *MemoryIssueStore {
	s := &MemoryIssueStore{}
	s.issues = append(s.issues, issues...)
	return s
}

// Put inserts or replaces an issue by id.
func (s *MemoryIssueStore) Put(issue models.Issue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.issues {
		if s.issues[i].ID == issue.ID {
			s.issues[i] = issue
			return
		}
	}
	s.issues = append(s.issues, issue)
}

// Len reports how many issues the store currently holds.
func (s *MemoryIssueStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.issues)
}

func (s *MemoryIssueStore) matching(p query.Predicate) []models.Issue {
	var out []models.Issue
	for _, issue := range s.issues {
		if p.Matches(issue) {
			out = append(out, issue)
		}
	}
	return out
}

func (s *MemoryIssueStore) Find(ctx context.Context, p query.Predicate, sortSpec Sort, skip, limit int64) ([]models.Issue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.matching(p)
	sort.SliceStable(matched, func(i, j int) bool {
		less := fieldLess(matched[i], matched[j], sortSpec.Field)
		if sortSpec.Descending {
			return fieldLess(matched[j], matched[i], sortSpec.Field)
		}
		return less
	})

	if skip >= int64(len(matched)) {
		return []models.Issue{}, nil
	}
	matched = matched[skip:]
	if limit > 0 && int64(len(matched)) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (s *MemoryIssueStore) Count(ctx context.Context, p query.Predicate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.matching(p))), nil
}

func (s *MemoryIssueStore) IDs(ctx context.Context, p query.Predicate) ([]primitive.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []primitive.ObjectID
	for _, issue := range s.matching(p) {
		ids = append(ids, issue.ID)
	}
	return ids, nil
}

func (s *MemoryIssueStore) DeleteMany(ctx context.Context, p query.Predicate) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []models.Issue
	var deleted int64
	for _, issue := range s.issues {
		if p.Matches(issue) {
			deleted++
			continue
		}
		kept = append(kept, issue)
	}
	s.issues = kept
	return deleted, nil
}

func fieldLess(a, b models.Issue, field string) bool {
	av, aok := a.FieldValue(field)
	bv, bok := b.FieldValue(field)
	if !aok || !bok {
		return bok && !aok
	}

	switch x := av.(type) {
	case time.Time:
		y, ok := bv.(time.Time)
		return ok && x.Before(y)
	case string:
		y, ok := bv.(string)
		return ok && x < y
	case float64:
		y, ok := bv.(float64)
		return ok && x < y
	}
	return false
}
