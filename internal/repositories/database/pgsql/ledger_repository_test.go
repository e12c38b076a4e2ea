package pgsql

import (
	"context"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veloxrp/econ_backend/internal/apperrors"
	"github.com/veloxrp/econ_backend/internal/core/domain"
)

func newLedgerMock(t *testing.T) (pgxmock.PgxPoolIface, *PgxLedgerRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: mock}}
}

func int64Ptr(v int64) *int64 { return &v }

func balanceRows(balance int64) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"balance"}).AddRow(balance)
}

func TestGetBalance_UnknownAccount(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(getBalanceSQL)).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetBalance(context.Background(), 999)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBalance_ZeroIsAValidBalance(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(getBalanceSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(0))

	balance, err := repo.GetBalance(context.Background(), 1001)

	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestAdjustBalance_CreditWritesBalanceAndRecordTogether(t *testing.T) {
	mock, repo := newLedgerMock(t)
	actorID := int64Ptr(42)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(100))
	mock.ExpectExec(regexp.QuoteMeta(addBalanceSQL)).
		WithArgs(int64(250), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(actorID, (*int64)(nil), int64Ptr(1001), int64(250), "Transfer", (*string)(nil), (*int64)(nil), int64Ptr(350)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.AdjustBalance(context.Background(), domain.BalanceAdjustment{
		AccountID: 1001,
		Amount:    250,
		Direction: domain.DirectionAdd,
		ActorID:   actorID,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_ConditionalDebitFailureWritesNothing(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(100))
	// The guard is part of the debit statement; zero affected rows means the
	// balance cannot cover the amount and nothing else may be written.
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(500), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.AdjustBalance(context.Background(), domain.BalanceAdjustment{
		AccountID: 1001,
		Amount:    500,
		Direction: domain.DirectionRemove,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_OverdraftSkipsTheGuard(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(100))
	mock.ExpectExec(regexp.QuoteMeta(removeBalanceSQL) + `$`).
		WithArgs(int64(500), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs((*int64)(nil), int64Ptr(1001), (*int64)(nil), int64(-500), "Transfer", (*string)(nil), int64Ptr(-400), (*int64)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.AdjustBalance(context.Background(), domain.BalanceAdjustment{
		AccountID:      1001,
		Amount:         500,
		Direction:      domain.DirectionRemove,
		AllowOverdraft: true,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustBalance_UnknownAccount(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(999)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.AdjustBalance(context.Background(), domain.BalanceAdjustment{
		AccountID: 999,
		Amount:    100,
		Direction: domain.DirectionAdd,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_ConservesFundsAcrossTwoRecords(t *testing.T) {
	mock, repo := newLedgerMock(t)
	actorID := int64Ptr(42)

	transfer, err := domain.NewAccountTransfer(1001, 2002, 1000, actorID, "", nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	// Debit leg: 5000 - 1000 = 4000, recorded on the from side only.
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(1000), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(actorID, int64Ptr(1001), (*int64)(nil), int64(-1000), "Transfer", (*string)(nil), int64Ptr(4000), (*int64)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Credit leg: 0 + 1000 = 1000, recorded on the to side only.
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(2002)).
		WillReturnRows(balanceRows(0))
	mock.ExpectExec(regexp.QuoteMeta(addBalanceSQL)).
		WithArgs(int64(1000), int64(2002)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(actorID, (*int64)(nil), int64Ptr(2002), int64(1000), "Transfer", (*string)(nil), (*int64)(nil), int64Ptr(1000)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.Transfer(context.Background(), transfer)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_DebitFailureAbortsBeforeTheCreditLeg(t *testing.T) {
	mock, repo := newLedgerMock(t)

	transfer, err := domain.NewAccountTransfer(1001, 2002, 6000, nil, "", nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(6000), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err = repo.Transfer(context.Background(), transfer)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransfer_RecordInsertMismatchRollsBackBothLegs(t *testing.T) {
	mock, repo := newLedgerMock(t)

	transfer, err := domain.NewAccountTransfer(1001, 2002, 1000, nil, "", nil)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(1000), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs((*int64)(nil), int64Ptr(1001), (*int64)(nil), int64(-1000), "Transfer", (*string)(nil), int64Ptr(4000), (*int64)(nil)).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectRollback()

	err = repo.Transfer(context.Background(), transfer)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferDirect_WritesOneCombinedRecord(t *testing.T) {
	mock, repo := newLedgerMock(t)
	actorID := int64Ptr(42)

	transfer, err := domain.NewAccountTransfer(1001, 2002, 1000, actorID, "", nil)
	require.NoError(t, err)

	// Snapshots are read before the transaction opens.
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceSQL)).
		WithArgs(int64(2002)).
		WillReturnRows(balanceRows(0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(1000), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(addBalanceSQL)).
		WithArgs(int64(1000), int64(2002)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(actorID, int64(1001), int64(2002), int64(1000), "Transfer", (*string)(nil), int64(4000), int64(1000)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err = repo.TransferDirect(context.Background(), transfer, false)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransferDirect_AbsentDestinationSkipsTheTransaction(t *testing.T) {
	mock, repo := newLedgerMock(t)

	transfer, err := domain.NewAccountTransfer(1001, 2002, 1000, nil, "", nil)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(getBalanceSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceSQL)).
		WithArgs(int64(2002)).
		WillReturnError(pgx.ErrNoRows)

	err = repo.TransferDirect(context.Background(), transfer, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditWithFunding_RunsFundBetweenUpdateAndRecord(t *testing.T) {
	mock, repo := newLedgerMock(t)
	actorID := int64Ptr(42)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(100))
	mock.ExpectExec(regexp.QuoteMeta(addBalanceSQL)).
		WithArgs(int64(200), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(actorID, nil, int64(1001), int64(200), "Deposit", (*string)(nil), nil, int64(300)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	fundCalled := false
	err := repo.CreditWithFunding(context.Background(), domain.BalanceAdjustment{
		AccountID: 1001,
		Amount:    200,
		Direction: domain.DirectionAdd,
		ActorID:   actorID,
	}, func() bool {
		fundCalled = true
		return true
	})

	require.NoError(t, err)
	assert.True(t, fundCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditWithFunding_FundFailureRollsTheCreditBack(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(100))
	mock.ExpectExec(regexp.QuoteMeta(addBalanceSQL)).
		WithArgs(int64(200), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectRollback()

	err := repo.CreditWithFunding(context.Background(), domain.BalanceAdjustment{
		AccountID: 1001,
		Amount:    200,
		Direction: domain.DirectionAdd,
	}, func() bool { return false })

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransactionFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitWithPayout_FailsClosedWithoutTouchingThePayout(t *testing.T) {
	mock, repo := newLedgerMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(6000), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	payoutCalled := false
	err := repo.DebitWithPayout(context.Background(), domain.BalanceAdjustment{
		AccountID: 1001,
		Amount:    6000,
		Direction: domain.DirectionRemove,
	}, func() bool {
		payoutCalled = true
		return true
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)
	assert.False(t, payoutCalled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitWithPayout_RecordsTheNegativeLeg(t *testing.T) {
	mock, repo := newLedgerMock(t)
	actorID := int64Ptr(42)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(getBalanceForUpdateSQL)).
		WithArgs(int64(1001)).
		WillReturnRows(balanceRows(5000))
	mock.ExpectExec(regexp.QuoteMeta(safeRemoveBalanceSQL)).
		WithArgs(int64(1000), int64(1001)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(insertTransactionSQL)).
		WithArgs(actorID, int64(1001), nil, int64(-1000), "Withdraw", (*string)(nil), int64(4000), nil).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := repo.DebitWithPayout(context.Background(), domain.BalanceAdjustment{
		AccountID: 1001,
		Amount:    1000,
		Direction: domain.DirectionRemove,
		ActorID:   actorID,
	}, func() bool { return true })

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTransactionsByAccount_DefaultsPagination(t *testing.T) {
	mock, repo := newLedgerMock(t)

	rows := pgxmock.NewRows([]string{"id", "actor_id", "from_id", "to_id", "amount", "message", "note", "from_balance", "to_balance", "created_at"})
	mock.ExpectQuery(`SELECT id, actor_id, from_id, to_id`).
		WithArgs(int64(1001), 20, 0).
		WillReturnRows(rows)

	records, err := repo.FindTransactionsByAccount(context.Background(), 1001, 0, -5)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}
