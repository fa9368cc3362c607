package database

import (
	"context"
	"sync/atomic"

	"gorm.io/gorm"
)

// QueryCounter counts the SQL statements issued while serving one request. It
// travels in the request context, so there is no process-global state.
type QueryCounter struct {
	n int64
}

func (qc *QueryCounter) Count() int64 {
	return atomic.LoadInt64(&qc.n)
}

func (qc *QueryCounter) inc() {
	atomic.AddInt64(&qc.n, 1)
}

type queryCounterKey struct{}

// WithQueryCounter attaches a fresh counter to ctx and returns it alongside.
func WithQueryCounter(ctx context.Context) (context.Context, *QueryCounter) {
	qc := &QueryCounter{}
	return context.WithValue(ctx, queryCounterKey{}, qc), qc
}

// CounterFromContext returns the request's counter, or nil outside a request.
func CounterFromContext(ctx context.Context) *QueryCounter {
	if ctx == nil {
		return nil
	}
	qc, _ := ctx.Value(queryCounterKey{}).(*QueryCounter)
	return qc
}

// RegisterQueryCounter hooks every GORM operation so statements are counted
// against whatever counter rides in the statement's context.
func RegisterQueryCounter(db *gorm.DB) error {
	count := func(tx *gorm.DB) {
		if qc := CounterFromContext(tx.Statement.Context); qc != nil {
			qc.inc()
		}
	}

	if err := db.Callback().Create().After("gorm:create").Register("inkwell:count_create", count); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("inkwell:count_query", count); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("inkwell:count_update", count); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("inkwell:count_delete", count); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("inkwell:count_row", count); err != nil {
		return err
	}
	if err := db.Callback().Raw().After("gorm:raw").Register("inkwell:count_raw", count); err != nil {
		return err
	}

	return nil
}
