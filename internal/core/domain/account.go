package domain

// AccountType distinguishes personal accounts from shared (group) accounts.
// Inactive is the soft-delete marker: account rows are never physically removed
// once created, so closed accounts keep their id, balance and history.
type AccountType string

const (
	AccountPersonal AccountType = "personal"
	AccountShared   AccountType = "shared"
	AccountInactive AccountType = "inactive"
)

// AccountRole binds a character to a set of permitted account actions.
// Absence of a grant means no access at all.
type AccountRole string

const (
	RoleViewer      AccountRole = "viewer"
	RoleContributor AccountRole = "contributor"
	RoleManager     AccountRole = "manager"
	RoleOwner       AccountRole = "owner"
)

// AccountAction is the kind of operation an authorizer is asked to approve.
type AccountAction string

const (
	ActionView         AccountAction = "view"
	ActionDeposit      AccountAction = "deposit"
	ActionWithdraw     AccountAction = "withdraw"
	ActionManageAccess AccountAction = "manage_access"
	ActionClose        AccountAction = "close"
)

// Account is a named balance holder. Exactly one of OwnerID (character-bound)
// or Group (organization-bound) is set.
type Account struct {
	AccountID int64       `json:"accountID"`
	Label     string      `json:"label"`
	OwnerID   *int64      `json:"ownerID,omitempty"`
	Group     *string     `json:"group,omitempty"`
	Type      AccountType `json:"type"`
	IsDefault bool        `json:"isDefault"`
	Balance   int64       `json:"balance"`
}

// Active reports whether the account can still take part in balance movements.
func (a Account) Active() bool {
	return a.Type != AccountInactive
}

// AccountWithRole is an account joined with the role the querying character
// holds on it.
type AccountWithRole struct {
	Account
	Role AccountRole `json:"role"`
}

// AccessGrant binds a character to an account with a role.
type AccessGrant struct {
	AccountID   int64       `json:"accountID"`
	CharacterID int64       `json:"characterID"`
	Role        AccountRole `json:"role"`
}

// NewAccount carries the fields needed to create an account. The id itself is
// generated by the repository inside the creating transaction.
type NewAccount struct {
	Label     string
	OwnerID   *int64
	Group     *string
	Shared    bool
	IsDefault bool
}
