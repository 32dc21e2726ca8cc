// Package orm is a small immutable query builder over gorm.
//
// Each builder call returns a new Query, so a base query can be shared and
// refined without one caller's conditions leaking into another's:
//
//	products := orm.New(ctx, db).Model(&models.Product{})
//	err := products.Where("price > ?", min).Order("id").Get(&out)
package orm

import (
	"context"
	"database/sql"
	"time"

	"github.com/bcama/linqlab/pkg/metrics"
	"gorm.io/gorm"
)

// Cacher is the storage Query.Cache reads through.
type Cacher interface {
	Get(ctx context.Context, key string, dest interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Query struct {
	db  *gorm.DB
	ctx context.Context
}

// New starts a query on a fresh session of db bound to ctx.
func New(ctx context.Context, db *gorm.DB) *Query {
	return &Query{
		db:  db.Session(&gorm.Session{NewDB: true, Context: ctx}),
		ctx: ctx,
	}
}

// wrap marks db as a safe point so the next chained call clones its
// statement instead of appending to it.
func (q *Query) wrap(db *gorm.DB) *Query {
	return &Query{db: db.Session(&gorm.Session{}), ctx: q.ctx}
}

func (q *Query) Model(v interface{}) *Query {
	return q.wrap(q.db.Model(v))
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return q.wrap(q.db.Where(query, args...))
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return q.wrap(q.db.Joins(query, args...))
}

func (q *Query) Preload(assoc string, args ...interface{}) *Query {
	return q.wrap(q.db.Preload(assoc, args...))
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return q.wrap(q.db.Select(query, args...))
}

func (q *Query) Distinct(args ...interface{}) *Query {
	return q.wrap(q.db.Distinct(args...))
}

func (q *Query) Group(name string) *Query {
	return q.wrap(q.db.Group(name))
}

func (q *Query) Order(value interface{}) *Query {
	return q.wrap(q.db.Order(value))
}

func (q *Query) Limit(n int) *Query {
	return q.wrap(q.db.Limit(n))
}

// Get loads every matching row into dest (a pointer to a slice).
func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

// First loads the first row by primary key order; gorm.ErrRecordNotFound
// when there is none.
func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

// Take loads one row without adding an ORDER BY.
func (q *Query) Take(dest interface{}) error {
	return q.db.Take(dest).Error
}

// Scan maps the selected columns onto dest, which need not be a model.
func (q *Query) Scan(dest interface{}) error {
	return q.db.Scan(dest).Error
}

func (q *Query) Count() (int64, error) {
	var n int64
	err := q.db.Count(&n).Error
	return n, err
}

// Pluck reads a single column into dest (a pointer to a slice).
func (q *Query) Pluck(column string, dest interface{}) error {
	return q.db.Pluck(column, dest).Error
}

// Row runs the query and returns its single result row.
func (q *Query) Row() *sql.Row {
	return q.db.Row()
}

// Cache serves dest from c when possible, otherwise runs Scan and stores the
// result for ttl. A zero ttl or nil c always queries.
func (q *Query) Cache(c Cacher, key string, ttl time.Duration, dest interface{}) error {
	if c == nil || ttl <= 0 {
		return q.Scan(dest)
	}

	if c.Get(q.ctx, key, dest) {
		metrics.CacheHits.Inc()
		return nil
	}
	metrics.CacheMisses.Inc()

	if err := q.Scan(dest); err != nil {
		return err
	}

	_ = c.Set(q.ctx, key, dest, ttl)
	return nil
}
