// Package source provides read-only access to the relational database the
// sync engine pulls rows from. Two drivers are supported: sqlite3 for file
// DSNs and pgx for postgres:// URLs. All statements are parameterized;
// table and column identifiers come from the fixed entity mappings, never
// from user data.
package source

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	// Database drivers registered for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/TommyNoLimits/GraphRAG-sub001/internal/config"
	"github.com/TommyNoLimits/GraphRAG-sub001/internal/types"
)

// Driver names accepted by Open. They match the database/sql registration
// names of the underlying drivers.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// DB wraps the relational source connection with driver-aware helpers.
type DB struct {
	conn   *sql.DB
	driver string
	dsn    string
}

// Open creates a source connection from configuration. For sqlite3 the DSN
// gains WAL, foreign-key, and busy-timeout pragmas; postgres DSNs pass
// through unchanged. The connection is verified with a ping before return.
func Open(cfg config.SourceConfig) (*DB, error) {
	dsn := cfg.DSN
	switch cfg.Driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres:
	default:
		return nil, types.NewError(types.SOURCE_OPEN_FAILED,
			fmt.Sprintf("unsupported source driver %q", cfg.Driver))
	}

	conn, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, types.WrapError(types.SOURCE_OPEN_FAILED, "failed to open source database", err)
	}

	// Configure connection pool
	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 10
	}
	idleConns := maxConns / 2
	if idleConns < 1 {
		idleConns = 1
	}
	conn.SetMaxOpenConns(maxConns)
	conn.SetMaxIdleConns(idleConns)
	conn.SetConnMaxLifetime(time.Hour)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, types.WrapRetryableError(types.SOURCE_CONNECTION_FAILED,
			"failed to ping source database", err)
	}

	db := &DB{
		conn:   conn,
		driver: cfg.Driver,
		dsn:    cfg.DSN,
	}

	if cfg.Driver == DriverSQLite {
		if err := db.verifyPragmas(ctx); err != nil {
			conn.Close()
			return nil, err
		}
	}

	return db, nil
}

// sqliteDSN appends the connection pragmas to a sqlite DSN, preserving any
// parameters the caller already set.
func sqliteDSN(dsn string) string {
	pragmas := "_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"
	if strings.Contains(dsn, "?") {
		return dsn + "&" + pragmas
	}
	return dsn + "?" + pragmas
}

// verifyPragmas confirms the sqlite pragmas took effect. In-memory databases
// report journal_mode=memory rather than wal, which is acceptable.
func (db *DB) verifyPragmas(ctx context.Context) error {
	var journalMode string
	if err := db.conn.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&journalMode); err != nil {
		return types.WrapError(types.SOURCE_OPEN_FAILED, "failed to verify journal mode", err)
	}
	if journalMode != "wal" && journalMode != "memory" {
		return types.NewError(types.SOURCE_OPEN_FAILED,
			fmt.Sprintf("WAL mode not enabled (got %s)", journalMode))
	}

	var foreignKeys int
	if err := db.conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&foreignKeys); err != nil {
		return types.WrapError(types.SOURCE_OPEN_FAILED, "failed to verify foreign keys", err)
	}
	if foreignKeys != 1 {
		return types.NewError(types.SOURCE_OPEN_FAILED, "foreign keys not enabled")
	}

	return nil
}

// Close closes the source connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return types.WrapRetryableError(types.SOURCE_CONNECTION_FAILED, "source ping failed", err)
	}
	return nil
}

// Health performs a connectivity check on the source database.
func (db *DB) Health(ctx context.Context) types.HealthStatus {
	if err := db.conn.PingContext(ctx); err != nil {
		return types.Unhealthy(fmt.Sprintf("ping failed: %v", err))
	}

	var result int
	if err := db.conn.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return types.Degraded(fmt.Sprintf("query failed: %v", err))
	}

	return types.Healthy("source reachable")
}

// Conn returns the underlying sql.DB connection.
// Use with caution - prefer the typed readers for row access.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Driver returns the active driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Rebind rewrites ? placeholders to the postgres positional style when the
// pgx driver is active. Queries never embed literal question marks, so a
// plain byte scan is safe.
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
