// Package visibility maps a requester's identity and the listing query
// parameters to a single predicate describing which issues they may see.
// Resolution is pure: nothing here touches the store.
package visibility

import (
	"errors"

	"civicconnect-be/models"
	"civicconnect-be/query"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultRadiusMeters bounds geo searches when the caller gives none.
const DefaultRadiusMeters = 5000

// ErrNotAuthorized is returned when a requester asks for another user's
// issue list without the admin role.
var ErrNotAuthorized = errors.New("not authorized to view these issues")

// ListParams are the already-parsed listing query parameters. Numeric and
// id parsing (and its ValidationErrors) belong to the HTTP layer; by the
// time params reach the resolver they are well formed.
type ListParams struct {
	Status       string
	Category     string
	Priority     string
	Search       string
	AssignedTo   *primitive.ObjectID
	ReportedBy   *primitive.ObjectID
	Latitude     *float64
	Longitude    *float64
	RadiusMeters float64
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

// Resolve builds the visibility predicate for the general issue listing.
// The base predicate always requires isPublic; role scoping narrows from
// there and always wins over the explicit query parameters it fixes:
// requesters cannot widen their own visibility.
func Resolve(user *models.User, p ListParams) query.Predicate {
	parts := []query.Predicate{query.Eq("isPublic", true)}

	// Explicit category/assignedTo parameters are dropped once role
	// scoping has pinned those fields.
	categoryFixed := false
	assignedFixed := false

	if user != nil {
		switch user.Role.Normalize() {
		case models.RoleCitizen, models.RoleAdmin:
			// Citizens see the public listing as-is. Admin privilege
			// applies to the per-user listing, not here.

		case models.RoleFieldStaff, models.RoleEmployee:
			parts = append(parts, query.Eq("assignedTo", user.ID))
			assignedFixed = true
			depts := user.EffectiveDepartments()
			if len(depts) > 0 && !user.HasAllDepartments() {
				parts = append(parts, query.InStrings("category", depts))
				categoryFixed = true
			}

		case models.RoleSupervisor:
			parts = append(parts, query.Or(
				query.Eq("assignedTo", user.ID),
				escalatedBranch(user),
			))

		case models.RoleCommissioner:
			// Sees every public issue, unscoped.

		default:
			// Unknown role values get citizen-level scoping. The listing
			// is public-only, so falling through cannot widen access.
		}
	}

	if p.Status != "" && p.Status != "all" {
		parts = append(parts, query.Eq("status", p.Status))
	}
	if p.Category != "" && !categoryFixed {
		parts = append(parts, query.Eq("category", p.Category))
	}
	if p.Priority != "" {
		parts = append(parts, query.Eq("priority", p.Priority))
	}
	if p.AssignedTo != nil && !assignedFixed {
		parts = append(parts, query.Eq("assignedTo", *p.AssignedTo))
	}
	if p.ReportedBy != nil {
		parts = append(parts, query.Eq("reportedBy", *p.ReportedBy))
	}

	if p.Search != "" {
		// Kept as its own OR node: conjoined with the supervisor
		// visibility OR, never flattened into it.
		parts = append(parts, query.Or(
			query.Regex("title", p.Search),
			query.Regex("description", p.Search),
			query.Regex("location.name", p.Search),
		))
	}

	if p.Latitude != nil && p.Longitude != nil {
		radius := p.RadiusMeters
		if radius <= 0 {
			radius = DefaultRadiusMeters
		}
		parts = append(parts, query.Near("location.coordinates", *p.Latitude, *p.Longitude, radius))
	}

	return query.And(parts...)
}

// escalatedBranch is the supervisor's second visibility branch: escalated
// field-staff issues within department scope. A wildcard or empty scope
// compiles to an empty $in, a contradiction, so such supervisors see only
// their direct assignments.
func escalatedBranch(user *models.User) query.Predicate {
	depts := user.EffectiveDepartments()
	if user.HasAllDepartments() {
		depts = nil
	}
	return query.And(
		query.Eq("assignedRole", string(models.RoleFieldStaff)),
		query.Eq("status", string(models.StatusEscalated)),
		query.InStrings("category", depts),
	)
}

// ResolveUserIssues builds the predicate for the per-user issue listing.
// Only admins may read another user's list; everyone else is limited to
// their own reportedBy id.
func ResolveUserIssues(requester *models.User, target primitive.ObjectID, status string) (query.Predicate, error) {
	if requester == nil {
		return nil, ErrNotAuthorized
	}
	if requester.Role.Normalize() != models.RoleAdmin && requester.ID != target {
		return nil, ErrNotAuthorized
	}

	parts := []query.Predicate{query.Eq("reportedBy", target)}
	if status != "" && status != "all" {
		parts = append(parts, query.Eq("status", status))
	}
	return query.And(parts...), nil
}
