package dto

import (
	"time"

	"github.com/veloxrp/econ_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
// Exactly one of OwnerID and Group must be set; the service enforces this.
type CreateAccountRequest struct {
	Label     string  `json:"label" binding:"required"`
	OwnerID   *int64  `json:"ownerID"`
	Group     *string `json:"group"`
	Shared    bool    `json:"shared"`
	IsDefault bool    `json:"isDefault"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID int64              `json:"accountID"`
	Label     string             `json:"label"`
	OwnerID   *int64             `json:"ownerID,omitempty"`
	Group     *string            `json:"group,omitempty"`
	Type      domain.AccountType `json:"type"`
	IsDefault bool               `json:"isDefault"`
	Balance   int64              `json:"balance"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Label:     acc.Label,
		OwnerID:   acc.OwnerID,
		Group:     acc.Group,
		Type:      acc.Type,
		IsDefault: acc.IsDefault,
		Balance:   acc.Balance,
	}
}

// AccountWithRoleResponse is an account plus the role the caller holds on it.
type AccountWithRoleResponse struct {
	AccountResponse
	Role domain.AccountRole `json:"role"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// SetAccountAccessRequest upserts or removes a role grant on an account.
// Omitting Role removes the grant.
type SetAccountAccessRequest struct {
	CharacterID int64   `json:"characterID" binding:"required"`
	Role        *string `json:"role" binding:"omitempty,accountrole"`
}

// TransactionResponse defines the data returned for one transaction record.
type TransactionResponse struct {
	RecordID      int64     `json:"recordID"`
	ActorID       *int64    `json:"actorID,omitempty"`
	FromAccountID *int64    `json:"fromAccountID,omitempty"`
	ToAccountID   *int64    `json:"toAccountID,omitempty"`
	Amount        int64     `json:"amount"`
	Message       string    `json:"message"`
	Note          *string   `json:"note,omitempty"`
	FromBalance   *int64    `json:"fromBalance,omitempty"`
	ToBalance     *int64    `json:"toBalance,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ToTransactionResponse converts a domain.TransactionRecord to its response DTO.
func ToTransactionResponse(rec domain.TransactionRecord) TransactionResponse {
	return TransactionResponse{
		RecordID:      rec.RecordID,
		ActorID:       rec.ActorID,
		FromAccountID: rec.FromAccountID,
		ToAccountID:   rec.ToAccountID,
		Amount:        rec.Amount,
		Message:       rec.Message,
		Note:          rec.Note,
		FromBalance:   rec.FromBalance,
		ToBalance:     rec.ToBalance,
		CreatedAt:     rec.CreatedAt,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"omitempty,min=0"`
}
