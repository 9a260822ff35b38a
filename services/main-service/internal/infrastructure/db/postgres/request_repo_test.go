package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/request"
)

func TestAdjustConfirmed(t *testing.T) {
	t.Run("increment fits", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("confirmed_requests = confirmed_requests + 1")).
			WithArgs(int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = NewRequestRepo(db).WithTx(context.Background(), func(tx request.Tx) error {
			fit, err := tx.AdjustConfirmed(context.Background(), 100, 1)
			require.NoError(t, err)
			assert.True(t, fit)
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increment on full event reports no fit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("confirmed_requests = confirmed_requests + 1")).
			WithArgs(int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err = NewRequestRepo(db).WithTx(context.Background(), func(tx request.Tx) error {
			fit, err := tx.AdjustConfirmed(context.Background(), 100, 1)
			require.NoError(t, err)
			assert.False(t, fit)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("decrement uses guarded query", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("confirmed_requests = confirmed_requests - 1")).
			WithArgs(int64(100)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = NewRequestRepo(db).WithTx(context.Background(), func(tx request.Tx) error {
			fit, err := tx.AdjustConfirmed(context.Background(), 100, -1)
			require.NoError(t, err)
			assert.True(t, fit)
			return nil
		})
		require.NoError(t, err)
	})
}

func TestRequestTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := assert.AnError
	err = NewRequestRepo(db).WithTx(context.Background(), func(request.Tx) error {
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.NoError(t, mock.ExpectationsWereMet())
}
