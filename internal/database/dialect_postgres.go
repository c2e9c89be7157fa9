package database

import (
	"database/sql"
	"strings"

	"github.com/lib/pq"
)

const applicationName = "specialcare"

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// DSN converts postgres:// URLs to key=value form and tags the connection
// with the application name unless one is given
func (d *PostgresDialect) DSN(config DialectConfig) string {
	dsn := config.URL
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		converted, err := pq.ParseURL(dsn)
		if err != nil {
			return dsn
		}
		dsn = converted
	}
	if !strings.Contains(dsn, "application_name=") {
		dsn = strings.TrimSpace(dsn + " application_name=" + applicationName)
	}
	return dsn
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) SupportsLastInsertId() bool {
	return false
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	defaultPool.apply(db)
	// foreign keys are always enforced
	return nil
}

func (d *PostgresDialect) MigrationsSubdir() string {
	return "postgres"
}

func (d *PostgresDialect) CreateMigrationsTableQuery() string {
	return `CREATE TABLE IF NOT EXISTS migrations (
	id BIGSERIAL PRIMARY KEY,
	filename TEXT UNIQUE NOT NULL,
	executed_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
)`
}

func (d *PostgresDialect) BoolValue(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
