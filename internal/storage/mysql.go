package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"systest/internal/domain"
)

const defaultDialTimeout = 5 * time.Second

// MySQLRecorder appends one row per test case of every run to a MySQL table
type MySQLRecorder struct {
	db    *sql.DB
	table string
}

// NewMySQLRecorder parses dsn and prepares a connection pool. Nothing is dialled
// until Record is called.
func NewMySQLRecorder(dsn, table string) (*MySQLRecorder, error) {
	if !isValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse results dsn: %w", err)
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("results dsn has no database name")
	}
	cfg.ParseTime = true
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultDialTimeout
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("results connector: %w", err)
	}
	return &MySQLRecorder{db: sql.OpenDB(connector), table: table}, nil
}

// Record creates the results table if needed and inserts the report in one transaction
func (r *MySQLRecorder) Record(ctx context.Context, report *domain.RunReport) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping results database: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createTableQuery(r.table)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", r.table, err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, insertQuery(r.table))
	if err != nil {
		return fmt.Errorf("prepare results insert: %w", err)
	}
	defer stmt.Close()

	recordedAt := time.Now().UTC()
	for _, c := range report.Details {
		_, err := stmt.ExecContext(ctx,
			report.Meta.RunID,
			report.Meta.SuiteFile,
			c.Name,
			c.Passed,
			c.Duration.Seconds(),
			c.Transport.Status(),
			c.Producer.Status(),
			c.Consumer.Status(),
			c.Validation.Requested,
			c.Validation.Match,
			c.Error,
			recordedAt,
		)
		if err != nil {
			return fmt.Errorf("insert result %s: %w", c.Name, err)
		}
	}
	return tx.Commit()
}

// Close releases the connection pool
func (r *MySQLRecorder) Close() error {
	return r.db.Close()
}

func createTableQuery(table string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"`id` BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, "+
		"`run_id` CHAR(36) NOT NULL, "+
		"`suite_file` VARCHAR(512) NOT NULL, "+
		"`test_name` VARCHAR(255) NOT NULL, "+
		"`passed` BOOLEAN NOT NULL, "+
		"`duration_seconds` DOUBLE NOT NULL, "+
		"`transport_status` VARCHAR(16) NOT NULL, "+
		"`producer_status` VARCHAR(16) NOT NULL, "+
		"`consumer_status` VARCHAR(16) NOT NULL, "+
		"`validation_requested` BOOLEAN NOT NULL, "+
		"`validation_match` BOOLEAN NOT NULL, "+
		"`error` TEXT, "+
		"`recorded_at` DATETIME NOT NULL, "+
		"KEY `idx_run_id` (`run_id`))", table)
}

func insertQuery(table string) string {
	return fmt.Sprintf("INSERT INTO `%s` (run_id, suite_file, test_name, passed, duration_seconds, "+
		"transport_status, producer_status, consumer_status, validation_requested, validation_match, "+
		"error, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)", table)
}

// isValidTableName validates the table name before it is spliced into a query
func isValidTableName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	for _, r := range name {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	// Check for SQL keywords that have no business in a table name
	upperName := strings.ToUpper(name)
	for _, word := range []string{"DROP", "DELETE", "TRUNCATE"} {
		if upperName == word {
			return false
		}
	}
	return true
}
