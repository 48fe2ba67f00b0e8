package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IssueCategory enum. Categories double as department names; the "All"
// wildcard is only ever valid on user records, never on issues.
type IssueCategory string

const (
	RoadTraffic       IssueCategory = "Road & Traffic"
	GarbageSanitation IssueCategory = "Garbage & Sanitation"
	WaterSupply       IssueCategory = "Water Supply"
	StreetLighting    IssueCategory = "Street Lighting"
	DrainageSewage    IssueCategory = "Drainage & Sewage"
	OtherCategory     IssueCategory = "Other"
)

// DepartmentAll is the wildcard department scope on staff records.
const DepartmentAll = "All"

// ValidCategories lists every category an issue may carry.
var ValidCategories = []IssueCategory{
	RoadTraffic, GarbageSanitation, WaterSupply,
	StreetLighting, DrainageSewage, OtherCategory,
}

// IsValidCategory reports whether s names an issue category.
func IsValidCategory(s string) bool {
	for _, c := range ValidCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	StatusReported   IssueStatus = "reported"
	StatusInProgress IssueStatus = "in-progress"
	StatusEscalated  IssueStatus = "escalated"
	StatusResolved   IssueStatus = "resolved"
)

// IsValidStatus reports whether s names an issue status.
func IsValidStatus(s string) bool {
	switch IssueStatus(s) {
	case StatusReported, StatusInProgress, StatusEscalated, StatusResolved:
		return true
	}
	return false
}

// IssuePriority enum
type IssuePriority string

const (
	PriorityLow    IssuePriority = "low"
	PriorityMedium IssuePriority = "medium"
	PriorityHigh   IssuePriority = "high"
	PriorityUrgent IssuePriority = "urgent"
)

// IsValidPriority reports whether s names an issue priority.
func IsValidPriority(s string) bool {
	switch IssuePriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// GeoPoint is a GeoJSON point, coordinates ordered [longitude, latitude]
// as required by MongoDB 2dsphere indexes.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from latitude/longitude.
func NewGeoPoint(latitude, longitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{longitude, latitude}}
}

func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}

// Location is where an issue was reported.
type Location struct {
	Name        string   `bson:"name" json:"name"`
	Coordinates GeoPoint `bson:"coordinates" json:"coordinates"`
}

// Issue represents a civic issue reported by a citizen.
type Issue struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description" json:"description"`
	Category     IssueCategory        `bson:"category" json:"category"`
	Status       IssueStatus          `bson:"status" json:"status"`
	Priority     IssuePriority        `bson:"priority" json:"priority"`
	Location     Location             `bson:"location" json:"location"`
	Tags         []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	ReportedBy   primitive.ObjectID   `bson:"reportedBy" json:"reportedBy"`
	AssignedTo   *primitive.ObjectID  `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	AssignedRole Role                 `bson:"assignedRole,omitempty" json:"assignedRole,omitempty"`
	IsPublic     bool                 `bson:"isPublic" json:"isPublic"`
	IsAnonymous  bool                 `bson:"isAnonymous" json:"isAnonymous"`
	UpvotedBy    []primitive.ObjectID `bson:"upvotedBy,omitempty" json:"upvotedBy,omitempty"`
	ResolvedAt   *time.Time           `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// FieldValue resolves a dotted document path against the issue, mirroring
// how the stored BSON document would be addressed. The second return is
// false when the field is absent (unassigned, unresolved, unknown path).
func (i Issue) FieldValue(name string) (interface{}, bool) {
	switch name {
	case "_id":
		return i.ID, true
	case "title":
		return i.Title, true
	case "description":
		return i.Description, true
	case "category":
		return string(i.Category), true
	case "status":
		return string(i.Status), true
	case "priority":
		return string(i.Priority), true
	case "location.name":
		return i.Location.Name, true
	case "location.coordinates":
		return i.Location.Coordinates, true
	case "reportedBy":
		return i.ReportedBy, true
	case "assignedTo":
		if i.AssignedTo == nil {
			return nil, false
		}
		return *i.AssignedTo, true
	case "assignedRole":
		if i.AssignedRole == "" {
			return nil, false
		}
		return string(i.AssignedRole), true
	case "isPublic":
		return i.IsPublic, true
	case "upvotedBy":
		return i.UpvotedBy, true
	case "resolvedAt":
		if i.ResolvedAt == nil {
			return nil, false
		}
		return *i.ResolvedAt, true
	case "createdAt":
		return i.CreatedAt, true
	case "updatedAt":
		return i.UpdatedAt, true
	}
	return nil, false
}

// HasUpvoted reports whether the given citizen already upvoted the issue.
func (i Issue) HasUpvoted(userID primitive.ObjectID) bool {
	for _, id := range i.UpvotedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// EnsureIssueIndexes creates the 2dsphere index backing geo queries and
// the compound index used by the retention sweep.
func EnsureIssueIndexes(collection *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location.coordinates", Value: "2dsphere"}},
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "resolvedAt", Value: 1}},
			Options: options.Index().SetName("retention_sweep"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
