// Package authz decides whether an authenticated caller may perform an action
// on a resource. Every role and ownership rule of the API lives in the policy
// table below; handlers and services never compare roles themselves.
package authz

import (
	"fmt"
	"slices"

	apperrors "foodorder/internal/errors"
	"foodorder/internal/model"
)

// Identity is the authenticated caller derived from a verified token.
type Identity struct {
	UserID uint
	Email  string
	Role   model.Role
}

// IsAdmin reports whether the caller has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Action names an operation subject to authorization.
type Action string

const (
	ActionCreateRestaurant Action = "restaurant:create"
	ActionUpdateRestaurant Action = "restaurant:update"
	ActionDeleteRestaurant Action = "restaurant:delete"
	ActionCreateMenuItem   Action = "menu:create"
	ActionListUsers        Action = "user:list"
	ActionViewUser         Action = "user:view"
	ActionUpdateUser       Action = "user:update"
	ActionDeleteUser       Action = "user:delete"
	ActionChangeRole       Action = "user:change_role"
	ActionViewOrder        Action = "order:view"
	ActionCancelOrder      Action = "order:cancel"
	ActionSetOrderStatus   Action = "order:set_status"
	ActionListAllOrders    Action = "order:list_all"
)

// Resource describes the target of an ownership-gated action. Owners lists
// every user id that counts as an owner of it.
type Resource struct {
	Owners []uint
}

// OwnedBy builds a Resource owned by the given users.
func OwnedBy(owners ...uint) Resource {
	return Resource{Owners: owners}
}

// Policy is the rule attached to one action. An empty Roles set admits every
// role; Ownership additionally requires the caller to be an owner or admin.
type Policy struct {
	Roles     []model.Role
	Ownership bool
}

var (
	staff = []model.Role{model.RoleAdmin, model.RoleRestaurantOwner}
	admin = []model.Role{model.RoleAdmin}
)

// DefaultPolicies is the rule set of the food-ordering API.
var DefaultPolicies = map[Action]Policy{
	ActionCreateRestaurant: {Roles: staff},
	ActionUpdateRestaurant: {Roles: staff, Ownership: true},
	ActionDeleteRestaurant: {Roles: staff, Ownership: true},
	ActionCreateMenuItem:   {Roles: staff, Ownership: true},
	ActionListUsers:        {Roles: admin},
	ActionViewUser:         {Ownership: true},
	ActionUpdateUser:       {Ownership: true},
	ActionDeleteUser:       {Ownership: true},
	ActionChangeRole:       {Roles: admin},
	ActionViewOrder:        {Ownership: true},
	ActionCancelOrder:      {Ownership: true},
	ActionSetOrderStatus:   {Roles: staff, Ownership: true},
	ActionListAllOrders:    {Roles: staff},
}

// Guard evaluates policies.
type Guard struct {
	policies map[Action]Policy
}

// NewGuard creates a guard over the given policies, or DefaultPolicies when nil.
func NewGuard(policies map[Action]Policy) *Guard {
	if policies == nil {
		policies = DefaultPolicies
	}
	return &Guard{policies: policies}
}

// Authorize returns nil when identity may perform action on res. A denial
// wraps ErrInsufficientRole or ErrNotOwner. Unknown actions are denied.
func (g *Guard) Authorize(identity Identity, action Action, res Resource) error {
	policy, ok := g.policies[action]
	if !ok {
		return fmt.Errorf("%w: unknown action %s", apperrors.ErrInsufficientRole, action)
	}

	if len(policy.Roles) > 0 && !slices.Contains(policy.Roles, identity.Role) {
		return apperrors.ErrInsufficientRole
	}

	if policy.Ownership && !identity.IsAdmin() && !slices.Contains(res.Owners, identity.UserID) {
		return apperrors.ErrNotOwner
	}

	return nil
}
