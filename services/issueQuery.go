package services

import (
	"context"

	"civicconnect-be/models"
	"civicconnect-be/store"
	"civicconnect-be/visibility"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultLimit is the page size when the caller gives none.
	DefaultLimit = 20
	// MaxLimit caps the page size so a single request cannot force an
	// unbounded scan. Out-of-range values are clamped, not rejected.
	MaxLimit = 100

	defaultSortField = "createdAt"
)

// Pagination is the page metadata returned alongside every listing.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// IssuePage is one page of issues plus its pagination metadata.
type IssuePage struct {
	Items      []models.Issue `json:"issues"`
	Pagination Pagination     `json:"pagination"`
}

// IssueQueryService binds the visibility resolver to the issue store:
// predicate resolution, pagination, sorting, counting.
type IssueQueryService struct {
	store store.IssueStore
}

func NewIssueQueryService(s store.IssueStore) *IssueQueryService {
	return &IssueQueryService{store: s}
}

// List runs the general issue listing for the given requester. The count
// and the page are two independent reads against the same predicate;
// under concurrent writes they may observe slightly different states,
// which is accepted.
func (s *IssueQueryService) List(ctx context.Context, user *models.User, p visibility.ListParams) (*IssuePage, error) {
	sortSpec, err := sortSpec(p.SortBy, p.SortOrder)
	if err != nil {
		return nil, err
	}

	page := clampPage(p.Page)
	limit := clampLimit(p.Limit)
	skip := int64(page-1) * int64(limit)

	predicate := visibility.Resolve(user, p)

	items, err := s.store.Find(ctx, predicate, sortSpec, skip, int64(limit))
	if err != nil {
		return nil, &StorageError{Op: "find", Err: err}
	}

	total, err := s.store.Count(ctx, predicate)
	if err != nil {
		return nil, &StorageError{Op: "count", Err: err}
	}

	return &IssuePage{
		Items:      items,
		Pagination: paginationFor(page, limit, total),
	}, nil
}

// ListUserIssues runs the per-user listing, restricted to the requester's
// own issues unless they are an admin.
func (s *IssueQueryService) ListUserIssues(ctx context.Context, requester *models.User, target primitive.ObjectID, status string, page, limit int) (*IssuePage, error) {
	predicate, err := visibility.ResolveUserIssues(requester, target, status)
	if err != nil {
		return nil, err
	}

	page = clampPage(page)
	limit = clampLimit(limit)
	skip := int64(page-1) * int64(limit)

	sortSpec := store.Sort{Field: defaultSortField, Descending: true}

	items, err := s.store.Find(ctx, predicate, sortSpec, skip, int64(limit))
	if err != nil {
		return nil, &StorageError{Op: "find", Err: err}
	}

	total, err := s.store.Count(ctx, predicate)
	if err != nil {
		return nil, &StorageError{Op: "count", Err: err}
	}

	return &IssuePage{
		Items:      items,
		Pagination: paginationFor(page, limit, total),
	}, nil
}

// sortSpec validates the sort parameters. Any field name is accepted;
// anything other than asc/desc for the direction fails closed.
func sortSpec(field, order string) (store.Sort, error) {
	if field == "" {
		field = defaultSortField
	}
	switch order {
	case "", "desc":
		return store.Sort{Field: field, Descending: true}, nil
	case "asc":
		return store.Sort{Field: field, Descending: false}, nil
	}
	return store.Sort{}, NewValidationError("unknown sort order %q", order)
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func clampLimit(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func paginationFor(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
