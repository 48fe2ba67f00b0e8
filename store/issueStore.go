// Package store is the issue persistence boundary. Predicate trees are
// compiled to driver filters here and nowhere else.
package store

import (
	"context"

	"civicconnect-be/models"
	"civicconnect-be/query"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sort is a single-key sort specification.
type Sort struct {
	Field      string
	Descending bool
}

// IssueStore is the document collection the query service and the cleanup
// job run against. Each call is a single atomic store operation.
type IssueStore interface {
	// Find returns one page of issues matching p.
	Find(ctx context.Context, p query.Predicate, sort Sort, skip, limit int64) ([]models.Issue, error)
	// Count returns the total number of issues matching p.
	Count(ctx context.Context, p query.Predicate) (int64, error)
	// IDs enumerates the ids of issues matching p, for audit logging.
	IDs(ctx context.Context, p query.Predicate) ([]primitive.ObjectID, error)
	// DeleteMany atomically removes every issue matching p and reports
	// how many were deleted.
	DeleteMany(ctx context.Context, p query.Predicate) (int64, error)
}
