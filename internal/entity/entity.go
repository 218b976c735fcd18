package entity

import (
	"strings"
	"time"
)

// User is an account of the admin dashboard.
type User struct {
	ID          string         `json:"id"                  yaml:"id"`
	DisplayName string         `json:"displayName"         yaml:"displayName"`
	Email       string         `json:"email"               yaml:"email"`
	Password    string         `json:"password,omitempty"  yaml:"-"`
	LastLogin   *time.Time     `json:"lastLogin,omitempty" yaml:"lastLogin,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"           yaml:"createdAt"`
	Roles       []UsersInRoles `json:"roles,omitempty"     yaml:"roles,omitempty"`
}

// RoleNames returns the names of the roles assigned to the user, in assignment order.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r.Role != nil {
			names = append(names, r.Role.Name)
		}
	}
	return names
}

// Role is a named permission group.
type Role struct {
	ID    int            `json:"id"              yaml:"id"`
	Name  string         `json:"name"            yaml:"name"`
	Users []UsersInRoles `json:"users,omitempty" yaml:"users,omitempty"`
}

// UsersInRoles is the assignment of a role to a user.
type UsersInRoles struct {
	UserID     string    `json:"userId"         yaml:"userId"`
	RoleID     int       `json:"roleId"         yaml:"roleId"`
	AssignedAt time.Time `json:"assignedAt"     yaml:"assignedAt"`
	Role       *Role     `json:"role,omitempty" yaml:"role,omitempty"`
}

// Genetic is a strain that plants are grown from.
type Genetic struct {
	ID         string  `json:"id"               yaml:"id"`
	Name       string  `json:"name"             yaml:"name"`
	FlowerDays int     `json:"flowerDays"       yaml:"flowerDays"`
	Plants     []Plant `json:"plants,omitempty" yaml:"plants,omitempty"`
}

// FlowerWeeks returns the flowering time in whole weeks, rounded up.
func (g Genetic) FlowerWeeks() int {
	const daysPerWeek = 7
	return (g.FlowerDays + daysPerWeek - 1) / daysPerWeek
}

// Plant is a single plant in cultivation.
type Plant struct {
	ID           string         `json:"id"                     yaml:"id"`
	Name         string         `json:"name"                   yaml:"name"`
	GeneticID    string         `json:"geneticId"              yaml:"geneticId"`
	Stage        PlantStage     `json:"stage,omitempty"        yaml:"stage,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"              yaml:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"              yaml:"updatedAt"`
	Genetic      *Genetic       `json:"genetic,omitempty"      yaml:"genetic,omitempty"`
	PlantHistory []PlantHistory `json:"PlantHistory,omitempty" yaml:"history,omitempty"`
}

// GeneticName returns the name of the plant's genetic, or its id when the
// relation was not loaded.
func (p Plant) GeneticName() string {
	if p.Genetic != nil && p.Genetic.Name != "" {
		return p.Genetic.Name
	}
	return p.GeneticID
}

// PlantHistory is one recorded action on a plant.
type PlantHistory struct {
	ID        string    `json:"id"        yaml:"id"`
	PlantID   string    `json:"plantId"   yaml:"plantId"`
	Action    string    `json:"action"    yaml:"action"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UserID    string    `json:"userId"    yaml:"userId"`
}

// Kind names one of the collections served by the API.
type Kind string

// Collections served by the API.
const (
	KindUser    Kind = "user"
	KindRole    Kind = "role"
	KindGenetic Kind = "genetic"
	KindPlant   Kind = "plant"
)

// AllKinds returns every collection in display order.
func AllKinds() []Kind {
	return []Kind{KindUser, KindRole, KindGenetic, KindPlant}
}

// Path returns the API path segment of the collection.
func (k Kind) Path() string {
	return string(k) + "s"
}

// Label returns the singular display label, e.g. "Genetic".
func (k Kind) Label() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}
