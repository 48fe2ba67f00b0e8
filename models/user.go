package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of identity roles. Citizens carry no role value
// in the database; Normalize maps the absent value to RoleCitizen.
type Role string

const (
	RoleCitizen      Role = "citizen"
	RoleFieldStaff   Role = "field-staff"
	RoleEmployee     Role = "employee"
	RoleSupervisor   Role = "supervisor"
	RoleCommissioner Role = "commissioner"
	RoleAdmin        Role = "admin"
)

// AllRoles enumerates every known role, citizen included.
var AllRoles = []Role{
	RoleCitizen, RoleFieldStaff, RoleEmployee,
	RoleSupervisor, RoleCommissioner, RoleAdmin,
}

// Normalize maps an empty role to RoleCitizen.
func (r Role) Normalize() Role {
	if r == "" {
		return RoleCitizen
	}
	return r
}

// IsStaff reports whether the role belongs to departmental staff.
func (r Role) IsStaff() bool {
	switch r {
	case RoleFieldStaff, RoleEmployee, RoleSupervisor, RoleCommissioner:
		return true
	}
	return false
}

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Password    string             `bson:"password,omitempty" json:"-"`
	Role        Role               `bson:"role,omitempty" json:"role,omitempty"`
	Departments []string           `bson:"departments,omitempty" json:"departments,omitempty"`
	// Department is the legacy single-department field, consulted only
	// when Departments is empty.
	Department string    `bson:"department,omitempty" json:"department,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// EffectiveDepartments returns the departments the user is scoped to:
// the Departments list when non-empty, else the legacy Department field,
// else nothing.
func (u *User) EffectiveDepartments() []string {
	if len(u.Departments) > 0 {
		return u.Departments
	}
	if u.Department != "" {
		return []string{u.Department}
	}
	return nil
}

// HasAllDepartments reports whether the user carries the "All" wildcard.
func (u *User) HasAllDepartments() bool {
	for _, d := range u.EffectiveDepartments() {
		if d == DepartmentAll {
			return true
		}
	}
	return false
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}
