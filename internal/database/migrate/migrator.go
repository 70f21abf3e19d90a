// Package migrate brings a persisted schema forward to the current models
// without destroying rows. Changes are strictly additive: tables are created
// when missing and columns are added when absent; nothing is dropped or renamed.
package migrate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"entity-tracker-backend/internal/database/models"
	apperrors "entity-tracker-backend/internal/errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// LedgerEntry records a Step applied to this database
type LedgerEntry struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Table     string    `gorm:"column:table_name;size:100;not null"`
	Column    string    `gorm:"column:column_name;size:100;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for LedgerEntry
func (LedgerEntry) TableName() string {
	return "schema_ledger"
}

// Report lists the DDL a Run issued
type Report struct {
	Applied  []Step
	Repaired []string // table.column added from the model outside the ledger
	Created  []string
}

// Changed reports whether the run issued any DDL against managed tables
func (r *Report) Changed() bool {
	return len(r.Applied) > 0 || len(r.Repaired) > 0 || len(r.Created) > 0
}

// Plan lists what a Run would change
type Plan struct {
	Steps   []Step
	Columns []string
	Missing []string
}

// Empty reports whether the schema is already current
func (p *Plan) Empty() bool {
	return len(p.Steps) == 0 && len(p.Columns) == 0 && len(p.Missing) == 0
}

// Migrator inspects and repairs the managed tables
type Migrator struct {
	db     *gorm.DB
	steps  []Step
	models []interface{}
	log    *logrus.Entry
}

// Option customises a Migrator
type Option func(*Migrator)

// WithSteps replaces the step ledger
func WithSteps(steps []Step) Option {
	return func(m *Migrator) { m.steps = steps }
}

// WithModels replaces the managed models; parents must come before children
func WithModels(managed ...interface{}) Option {
	return func(m *Migrator) { m.models = managed }
}

// New creates a Migrator for the current data model
func New(db *gorm.DB, opts ...Option) *Migrator {
	m := &Migrator{
		db:     db,
		steps:  DefaultSteps,
		models: models.All(),
		log:    logrus.WithField("component", "migrate"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type managedTable struct {
	model  interface{}
	schema *schema.Schema
}

// parse resolves every model up front so relationships between them are known
// (and their foreign keys emitted) before any table is created.
func (m *Migrator) parse() ([]managedTable, error) {
	tables := make([]managedTable, 0, len(m.models))
	for _, model := range m.models {
		stmt := &gorm.Statement{DB: m.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		tables = append(tables, managedTable{model: model, schema: stmt.Schema})
	}
	return tables, nil
}

// Plan reports pending changes without executing any DDL
func (m *Migrator) Plan() (*Plan, error) {
	tables, err := m.parse()
	if err != nil {
		return nil, err
	}

	plan := &Plan{}
	for _, t := range tables {
		name := t.schema.Table
		if !m.db.Migrator().HasTable(name) {
			plan.Missing = append(plan.Missing, name)
			continue
		}
		existing, err := m.columnSet(name)
		if err != nil {
			return nil, err
		}
		plan.Steps = append(plan.Steps, m.pendingSteps(name, existing)...)
		for _, f := range m.extraFields(t.schema, existing) {
			plan.Columns = append(plan.Columns, name+"."+f.DBName)
		}
	}
	return plan, nil
}

// Run applies all pending changes. It is idempotent: a second run on the same
// database issues no DDL.
func (m *Migrator) Run() (*Report, error) {
	tables, err := m.parse()
	if err != nil {
		return nil, err
	}

	if !m.db.Migrator().HasTable(&LedgerEntry{}) {
		if err := m.db.Migrator().CreateTable(&LedgerEntry{}); err != nil {
			return nil, apperrors.NewMigrationError(LedgerEntry{}.TableName(), err)
		}
	}

	report := &Report{}
	for _, t := range tables {
		name := t.schema.Table
		if !m.db.Migrator().HasTable(name) {
			if err := m.db.Migrator().CreateTable(t.model); err != nil {
				return report, apperrors.NewMigrationError(name, err)
			}
			report.Created = append(report.Created, name)
			m.log.WithField("table", name).Info("Created table from model")
			continue
		}

		// A failed repair is rolled back. The table is accepted only if its
		// columns are complete anyway; otherwise migration aborts.
		if err := m.repair(t, report); err != nil {
			m.log.WithError(err).WithField("table", name).Warn("Additive repair rolled back, rechecking columns")
			if ferr := m.createMissing(tables, report); ferr != nil {
				return report, apperrors.NewMigrationError(name, errors.Join(err, ferr))
			}
			existing, cerr := m.columnSet(name)
			if cerr != nil {
				return report, apperrors.NewMigrationError(name, errors.Join(err, cerr))
			}
			missing := missingColumns(t.schema, existing)
			for _, step := range m.pendingSteps(name, existing) {
				missing = append(missing, step.Column)
			}
			if len(missing) > 0 {
				return report, apperrors.NewMigrationError(name,
					fmt.Errorf("%w (still missing: %s)", err, strings.Join(missing, ", ")))
			}
		}
	}

	if report.Changed() {
		m.log.WithFields(logrus.Fields{
			"applied":  len(report.Applied),
			"repaired": len(report.Repaired),
			"created":  report.Created,
		}).Info("Schema migrated")
	}
	return report, nil
}

// repair adds every absent column of one table inside a single transaction,
// so a failure leaves the table exactly as it was.
func (m *Migrator) repair(t managedTable, report *Report) error {
	name := t.schema.Table
	existing, err := m.columnSet(name)
	if err != nil {
		return err
	}

	steps := m.pendingSteps(name, existing)
	extra := m.extraFields(t.schema, existing)
	if len(steps) == 0 && len(extra) == 0 {
		return nil
	}

	var applied []Step
	var repaired []string
	err = m.db.Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			err := tx.Exec("ALTER TABLE ? ADD COLUMN ? "+step.definition(),
				clause.Table{Name: step.Table}, clause.Column{Name: step.Column}).Error
			if err != nil {
				return fmt.Errorf("add column %s: %w", step.Column, err)
			}
			entry := &LedgerEntry{
				Version:   step.Version,
				Table:     step.Table,
				Column:    step.Column,
				AppliedAt: time.Now().UTC(),
			}
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(entry).Error; err != nil {
				return fmt.Errorf("record step %d: %w", step.Version, err)
			}
			applied = append(applied, step)
		}
		for _, field := range extra {
			if err := tx.Migrator().AddColumn(t.model, field.Name); err != nil {
				return fmt.Errorf("add column %s: %w", field.DBName, err)
			}
			repaired = append(repaired, name+"."+field.DBName)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, step := range applied {
		m.log.WithFields(logrus.Fields{"table": step.Table, "column": step.Column, "version": step.Version}).Info("Added column")
	}
	report.Applied = append(report.Applied, applied...)
	report.Repaired = append(report.Repaired, repaired...)
	return nil
}

// createMissing creates every managed table that does not exist from its
// model. Existing tables, including one whose repair failed, are left alone.
func (m *Migrator) createMissing(tables []managedTable, report *Report) error {
	for _, t := range tables {
		if m.db.Migrator().HasTable(t.schema.Table) {
			continue
		}
		if err := m.db.Migrator().CreateTable(t.model); err != nil {
			return err
		}
		report.Created = append(report.Created, t.schema.Table)
	}
	return nil
}

func (m *Migrator) columnSet(table string) (map[string]bool, error) {
	columns, err := m.db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}
	set := make(map[string]bool, len(columns))
	for _, c := range columns {
		set[strings.ToLower(c.Name())] = true
	}
	return set, nil
}

func (m *Migrator) pendingSteps(table string, existing map[string]bool) []Step {
	var pending []Step
	for _, step := range m.steps {
		if step.Table == table && !existing[strings.ToLower(step.Column)] {
			pending = append(pending, step)
		}
	}
	return pending
}

// extraFields returns model columns that are absent and not covered by a step
func (m *Migrator) extraFields(s *schema.Schema, existing map[string]bool) []*schema.Field {
	covered := make(map[string]bool)
	for _, step := range m.steps {
		if step.Table == s.Table {
			covered[strings.ToLower(step.Column)] = true
		}
	}

	var fields []*schema.Field
	for _, f := range s.Fields {
		name := strings.ToLower(f.DBName)
		if name == "" || existing[name] || covered[name] {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func missingColumns(s *schema.Schema, existing map[string]bool) []string {
	var missing []string
	for _, name := range s.DBNames {
		if !existing[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing
}
