package dto

// DepositRequest moves cash into an account.
type DepositRequest struct {
	AccountID int64   `json:"accountID" binding:"required"`
	Amount    int64   `json:"amount" binding:"required,gt=0"`
	Message   string  `json:"message"`
	Note      *string `json:"note"`
}

// WithdrawRequest moves account funds out to cash.
type WithdrawRequest struct {
	AccountID int64   `json:"accountID" binding:"required"`
	Amount    int64   `json:"amount" binding:"required,gt=0"`
	Message   string  `json:"message"`
	Note      *string `json:"note"`
}

// TransferRequest moves funds between two accounts.
type TransferRequest struct {
	FromAccountID int64   `json:"fromAccountID" binding:"required"`
	ToAccountID   int64   `json:"toAccountID" binding:"required"`
	Amount        int64   `json:"amount" binding:"required,gt=0"`
	Message       string  `json:"message"`
	Note          *string `json:"note"`
}
