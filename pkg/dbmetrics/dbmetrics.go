package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/coiffurelab/salon-booking-service/pkg/metrics"
)

// DBExecutor is the query surface shared by *DB, *Tx and anything pulled out
// of a context. Repositories depend on this instead of *sql.DB so the same
// code runs inside and outside transactions.
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// TxExecutor is a DBExecutor bound to an open transaction.
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type ctxKey struct{}

// WithTx stores an open transaction in the context so that repositories called
// within a transaction manager callback run their statements on it.
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, tx)
}

// GetExecutor returns the transaction from the context if one is active,
// otherwise the fallback executor.
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(ctxKey{}).(TxExecutor); ok {
		return tx
	}
	return fallback
}

// IsInTransaction reports whether the context carries an active transaction.
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(TxExecutor)
	return ok
}

// DB wraps *sql.DB with optional per-query metrics. A nil collector disables
// recording without changing any call site.
type DB struct {
	db        *sql.DB
	collector *metrics.Metrics
}

// Wrap instruments db. collector may be nil.
func Wrap(db *sql.DB, collector *metrics.Metrics) *DB {
	return &DB{db: db, collector: collector}
}

// WrapWithDefault instruments db and starts a goroutine that exports
// connection-pool gauges until stopCh is closed.
func WrapWithDefault(db *sql.DB, collector *metrics.Metrics, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, collector)
	if collector != nil {
		go wrapped.collectPoolStats(stopCh)
	}
	return wrapped
}

func (d *DB) collectPoolStats(stopCh <-chan struct{}) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := d.db.Stats()
			d.collector.DBPoolOpen.Set(float64(stats.OpenConnections))
			d.collector.DBPoolInUse.Set(float64(stats.InUse))
			d.collector.DBPoolIdle.Set(float64(stats.Idle))
		}
	}
}

func (d *DB) observe(op string, start time.Time, err error) {
	if d.collector == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	d.collector.DBQueriesTotal.WithLabelValues(op, status).Inc()
	d.collector.DBQueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", start, err)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", start, nil)
	return row
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", start, err)
	return res, err
}

// BeginTx opens a transaction whose statements are recorded with the same
// collector as the parent DB.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &instrumentedTx{tx: tx, parent: d}, nil
}

type instrumentedTx struct {
	tx     *sql.Tx
	parent *DB
}

func (t *instrumentedTx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.parent.observe("tx_query", start, err)
	return rows, err
}

func (t *instrumentedTx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.parent.observe("tx_query_row", start, nil)
	return row
}

func (t *instrumentedTx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.parent.observe("tx_exec", start, err)
	return res, err
}

func (t *instrumentedTx) Commit() error   { return t.tx.Commit() }
func (t *instrumentedTx) Rollback() error { return t.tx.Rollback() }
