package services

import (
	"context"

	"github.com/veloxrp/econ_backend/internal/core/domain"
	portssvc "github.com/veloxrp/econ_backend/internal/core/ports/services"
)

// rolePermissions maps each role to the actions it permits. Roles are not
// hierarchical in the data model; the table spells every permission out.
var rolePermissions = map[domain.AccountRole]map[domain.AccountAction]bool{
	domain.RoleViewer: {
		domain.ActionView: true,
	},
	domain.RoleContributor: {
		domain.ActionView:    true,
		domain.ActionDeposit: true,
	},
	domain.RoleManager: {
		domain.ActionView:     true,
		domain.ActionDeposit:  true,
		domain.ActionWithdraw: true,
	},
	domain.RoleOwner: {
		domain.ActionView:         true,
		domain.ActionDeposit:      true,
		domain.ActionWithdraw:     true,
		domain.ActionManageAccess: true,
		domain.ActionClose:        true,
	},
}

// roleAuthorizer is the default ActionAuthorizer: a pure role-permission
// lookup. Deployments with richer policy (faction ranks, admin overrides)
// replace it at wiring time.
type roleAuthorizer struct{}

// NewRoleAuthorizer creates the default role-based authorizer.
func NewRoleAuthorizer() portssvc.ActionAuthorizer {
	return roleAuthorizer{}
}

var _ portssvc.ActionAuthorizer = (*roleAuthorizer)(nil)

// CanPerformAction reports whether the role permits the action. An empty role
// (no grant) permits nothing.
func (roleAuthorizer) CanPerformAction(_ context.Context, _ *domain.Character, _ int64, role domain.AccountRole, action domain.AccountAction) (bool, error) {
	perms, ok := rolePermissions[role]
	if !ok {
		return false, nil
	}
	return perms[action], nil
}
