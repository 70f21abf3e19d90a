package database

import (
	"fmt"
	"strings"
	"time"

	"entity-tracker-backend/internal/database/migrate"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	LogLevel        logger.LogLevel
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	// SkipMigrate leaves the schema untouched; cmd/migrate runs it out-of-band.
	SkipMigrate bool
}

// Dialect identifies the relational backend selected by a DSN
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// ParseDSN selects the backend from a DATABASE_URL and normalises it for the
// driver. postgres:// and postgresql:// select Postgres; sqlite:// (or a bare
// path) selects SQLite with foreign keys enforced.
func ParseDSN(dsn string) (Dialect, string, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "host="):
		return DialectPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DialectSQLite, sqliteDSN(strings.TrimPrefix(dsn, "sqlite://")), nil
	case strings.HasPrefix(dsn, "sqlite:"):
		return DialectSQLite, sqliteDSN(strings.TrimLeft(strings.TrimPrefix(dsn, "sqlite:"), "/")), nil
	case strings.Contains(dsn, "://"):
		return "", "", fmt.Errorf("unsupported database URL scheme: %s", dsn)
	case dsn == "":
		return "", "", fmt.Errorf("database URL is empty")
	default:
		return DialectSQLite, sqliteDSN(dsn), nil
	}
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Open connects to the database selected by dsn without touching the schema
func Open(dsn string, opts *Options) (*gorm.DB, Dialect, error) {
	opts = withDefaults(opts)

	dialect, normalized, err := ParseDSN(dsn)
	if err != nil {
		return nil, "", err
	}

	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(normalized)
	default:
		dialector = sqlite.Open(normalized)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(opts.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, "", fmt.Errorf("get sql handle: %w", err)
	}
	if dialect == DialectSQLite {
		// SQLite allows one writer; a single connection serialises transactions
		// instead of failing them with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	return db, dialect, nil
}

// Initialize opens the database and brings the schema to the current model.
func Initialize(dsn string, opts *Options) (*gorm.DB, error) {
	opts = withDefaults(opts)

	db, dialect, err := Open(dsn, opts)
	if err != nil {
		return nil, err
	}

	if !opts.SkipMigrate {
		report, err := migrate.New(db).Run()
		if err != nil {
			_ = Close(db)
			return nil, fmt.Errorf("migrate schema: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"dialect": dialect,
			"applied": len(report.Applied),
			"created": report.Created,
		}).Info("Database schema is up to date")
	}

	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withDefaults(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Error
	}
	if opts.MaxOpenConns == 0 {
		opts.MaxOpenConns = 20
	}
	if opts.MaxIdleConns == 0 {
		opts.MaxIdleConns = 10
	}
	if opts.ConnMaxLifetime == 0 {
		opts.ConnMaxLifetime = 30 * time.Minute
	}
	if opts.ConnMaxIdleTime == 0 {
		opts.ConnMaxIdleTime = 10 * time.Minute
	}
	return opts
}
