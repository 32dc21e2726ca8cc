// Package migration runs registered schema migrations and records them in
// a tracking table, one batch per run.
//
//	func init() {
//	    migration.Register("20240101000000_create_clients_table", &CreateClientsTable{})
//	}
//
//	linqlab migrate             // run all pending
//	linqlab migrate:rollback    // roll back last batch
package migration

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bcama/linqlab/pkg/logger"
	"gorm.io/gorm"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "linqlab_migrations" }

type registered struct {
	name string
	m    Migration
}

var (
	registryMu sync.Mutex
	registry   []registered
)

// ErrNoMigrations is returned by Run when nothing has been registered.
var ErrNoMigrations = errors.New("migration: no migrations registered")

// Register adds a migration. name must be timestamp-prefixed; pending
// migrations run in name order.
func Register(name string, m Migration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, registered{name: name, m: m})
}

func registeredSorted() []registered {
	registryMu.Lock()
	out := append([]registered(nil), registry...)
	registryMu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner that reports progress on stdout.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db, out: os.Stdout}
}

// WithOutput redirects progress output.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&record{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]record, error) {
	var rows []record
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: load history: %w", err)
	}
	out := make(map[string]record, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

// Pending returns the names of migrations that have not run yet.
func (r *Runner) Pending() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}

	var names []string
	for _, reg := range registeredSorted() {
		if _, ok := done[reg.name]; !ok {
			names = append(names, reg.name)
		}
	}
	return names, nil
}

// Run executes all pending migrations as one batch.
func (r *Runner) Run() error {
	all := registeredSorted()
	if len(all) == 0 {
		return ErrNoMigrations
	}
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.ran()
	if err != nil {
		return err
	}

	batch := r.lastBatch() + 1
	count := 0
	for _, reg := range all {
		if _, ok := done[reg.name]; ok {
			continue
		}

		logger.Info("migration: running", "name", reg.name)
		if err := reg.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		if err := r.db.Create(&record{Name: reg.name, Batch: batch}).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
		fmt.Fprintf(r.out, "  Migrated: %s\n", reg.name)
		count++
	}

	if count == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}
	logger.Info("migration: done", "ran", count, "batch", batch)
	return nil
}

// Rollback reverses every migration in the most recent batch, newest first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	last := r.lastBatch()
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var rows []record
	if err := r.db.Where("batch = ?", last).Order("id desc").Find(&rows).Error; err != nil {
		return fmt.Errorf("migration: load batch %d: %w", last, err)
	}

	byName := make(map[string]Migration)
	for _, reg := range registeredSorted() {
		byName[reg.name] = reg.m
	}

	for _, rec := range rows {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		logger.Info("migration: rolling back", "name", rec.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return fmt.Errorf("migration: forget %s: %w", rec.Name, err)
		}
		fmt.Fprintf(r.out, "  Rolled back: %s\n", rec.Name)
	}
	return nil
}

// Status prints every registered migration with its batch, if it ran.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.ran()
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "%-60s  %-8s  %s\n", "Migration", "Status", "Batch")
	fmt.Fprintln(r.out, strings.Repeat("-", 80))
	for _, reg := range registeredSorted() {
		if rec, ok := done[reg.name]; ok {
			fmt.Fprintf(r.out, "%-60s  %-8s  %d\n", reg.name, "Ran", rec.Batch)
		} else {
			fmt.Fprintf(r.out, "%-60s  %-8s  -\n", reg.name, "Pending")
		}
	}
	return nil
}

func (r *Runner) lastBatch() int {
	var out struct{ Max int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) AS max").Scan(&out)
	return out.Max
}
