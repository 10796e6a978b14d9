package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/coiffurelab/salon-booking-service/pkg/dbmetrics"
)

const maxSerializableAttempts = 3

var (
	// ErrBeginTx is returned when a transaction could not be started.
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommitTx is returned when a transaction could not be committed.
	ErrCommitTx = errors.New("txmanager: failed to commit transaction")

	// ErrRetriesExhausted is returned when a serializable transaction kept
	// failing with serialization conflicts after all attempts.
	ErrRetriesExhausted = errors.New("txmanager: serialization retries exhausted")
)

// TxBeginner starts transactions. Satisfied by *dbmetrics.DB.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// RetryObserver is notified on each serialization-failure retry. Optional.
type RetryObserver interface {
	ObserveTxRetry()
}

// TransactionManager runs callbacks inside database transactions. The open
// transaction is injected into the callback context, where repositories pick
// it up via dbmetrics.GetExecutor.
type TransactionManager struct {
	db       TxBeginner
	observer RetryObserver
}

// NewTransactionManager creates a manager over db.
func NewTransactionManager(db TxBeginner) *TransactionManager {
	return &TransactionManager{db: db}
}

// WithRetryObserver registers an observer for serialization retries.
func (m *TransactionManager) WithRetryObserver(o RetryObserver) *TransactionManager {
	m.observer = o
	return m
}

// DoSerializable runs fn at SERIALIZABLE isolation. Serialization failures
// (SQLSTATE 40001, 40P01) abort the transaction without being a caller error,
// so the whole callback is retried a bounded number of times. This makes
// check-then-write sequences like conflict detection safe under concurrent
// bookings of the same staff member and day.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	var err error
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		err = m.run(ctx, opts, fn)
		if err == nil || !isSerializationFailure(err) {
			return err
		}
		if m.observer != nil {
			m.observer.ObserveTxRetry()
		}
	}

	return fmt.Errorf("%w: %v", ErrRetriesExhausted, err)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) error {
	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrCommitTx, err)
	}
	return nil
}

// isSerializationFailure reports whether err is a postgres serialization
// failure (40001) or deadlock (40P01), both of which are safe to retry.
func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
