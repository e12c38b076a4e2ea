package domain

import (
	"fmt"
	"time"

	"github.com/veloxrp/econ_backend/internal/apperrors"
)

// AdjustDirection selects whether a balance adjustment credits or debits the
// account.
type AdjustDirection string

const (
	DirectionAdd    AdjustDirection = "add"
	DirectionRemove AdjustDirection = "remove"
)

// TransactionRecord is one immutable audit row describing a single balance
// movement. For external movements (cash in/out) exactly one of FromAccountID
// and ToAccountID is set; a legged transfer produces two records, each carrying
// only its own side. FromBalance/ToBalance snapshot the affected account's
// balance after the mutation and are nil on the side this record does not touch.
type TransactionRecord struct {
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

// BalanceAdjustment describes one atomic leg: a single account's balance
// mutation paired with exactly one transaction record.
type BalanceAdjustment struct {
	AccountID      int64
	Amount         int64 // magnitude, always > 0
	Direction      AdjustDirection
	AllowOverdraft bool
	ActorID        *int64
	Message        string // defaulted from the locale catalog when empty
	Note           *string
}

// SignedAmount returns the bookkeeping amount for a leg record: debits are
// recorded negative, credits positive, regardless of the sign the caller
// supplied.
func SignedAmount(direction AdjustDirection, magnitude int64) int64 {
	if magnitude < 0 {
		magnitude = -magnitude
	}
	if direction == DirectionRemove {
		return -magnitude
	}
	return magnitude
}

// AccountTransfer describes a two-leg account-to-account movement.
type AccountTransfer struct {
	FromAccountID int64
	ToAccountID   int64
	Amount        int64
	ActorID       *int64
	Message       string
	Note          *string
}

// NewAccountTransfer validates the transfer contract. A non-positive amount is
// a programming error on the caller's side, surfaced as a validation error
// before any transactional work starts.
func NewAccountTransfer(fromID, toID, amount int64, actorID *int64, message string, note *string) (AccountTransfer, error) {
	if amount <= 0 {
		return AccountTransfer{}, fmt.Errorf("%w: transfer amount must be positive, got %d", apperrors.ErrValidation, amount)
	}
	return AccountTransfer{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		ActorID:       actorID,
		Message:       message,
		Note:          note,
	}, nil
}
