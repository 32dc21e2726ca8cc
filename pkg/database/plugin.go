package database

import (
	"errors"
	"time"

	"github.com/bcama/linqlab/pkg/metrics"
	"gorm.io/gorm"
)

const startKey = "linqlab:query_start"

// MetricsPlugin times every gorm operation into metrics.DBQueryDuration.
type MetricsPlugin struct{}

func (p *MetricsPlugin) Name() string { return "linqlab:metrics" }

func (p *MetricsPlugin) Initialize(db *gorm.DB) error {
	type hook struct {
		op       string
		register func(name string, fn func(*gorm.DB)) error
		after    func(name string, fn func(*gorm.DB)) error
	}

	cb := db.Callback()
	hooks := []hook{
		{"query", cb.Query().Before("gorm:query").Register, cb.Query().After("gorm:query").Register},
		{"row", cb.Row().Before("gorm:row").Register, cb.Row().After("gorm:row").Register},
		{"create", cb.Create().Before("gorm:create").Register, cb.Create().After("gorm:create").Register},
		{"update", cb.Update().Before("gorm:update").Register, cb.Update().After("gorm:update").Register},
		{"delete", cb.Delete().Before("gorm:delete").Register, cb.Delete().After("gorm:delete").Register},
		{"raw", cb.Raw().Before("gorm:raw").Register, cb.Raw().After("gorm:raw").Register},
	}

	for _, h := range hooks {
		op := h.op
		if err := h.register("linqlab:before_"+op, before); err != nil {
			return err
		}
		if err := h.after("linqlab:after_"+op, func(tx *gorm.DB) { after(tx, op) }); err != nil {
			return err
		}
	}
	return nil
}

func before(tx *gorm.DB) {
	tx.InstanceSet(startKey, time.Now())
}

func after(tx *gorm.DB, op string) {
	v, ok := tx.InstanceGet(startKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}

	table := tx.Statement.Table
	if table == "" {
		table = "unknown"
	}
	metrics.ObserveDBQuery(op, table, start)

	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		metrics.DBQueryErrors.WithLabelValues(op, table).Inc()
	}
}
