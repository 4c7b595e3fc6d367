package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Drivers soportados (nombres de database/sql).
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open abre la base y crea el esquema si falta.
func Open(driver, dsn string) (*sql.DB, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("sqldb: unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		// SQLite admite un solo escritor; una conexión evita SQLITE_BUSY.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	default:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxIdleTime(5 * time.Minute)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schemas[driver]); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqldb: apply schema: %w", err)
	}

	return db, nil
}

// seq solo define el orden físico; los IDs que ve la app son posiciones.
var schemas = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS feed_log (
			seq         BIGSERIAL PRIMARY KEY,
			entry_date  TEXT NOT NULL DEFAULT '',
			entry_time  TEXT NOT NULL DEFAULT '',
			entry_type  TEXT NOT NULL DEFAULT '',
			amount      TEXT NOT NULL DEFAULT '',
			duration    TEXT NOT NULL DEFAULT '',
			notes       TEXT NOT NULL DEFAULT '',
			logged_by   TEXT NOT NULL DEFAULT '',
			occurred_at TEXT NOT NULL DEFAULT ''
		)`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS feed_log (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			entry_date  TEXT NOT NULL DEFAULT '',
			entry_time  TEXT NOT NULL DEFAULT '',
			entry_type  TEXT NOT NULL DEFAULT '',
			amount      TEXT NOT NULL DEFAULT '',
			duration    TEXT NOT NULL DEFAULT '',
			notes       TEXT NOT NULL DEFAULT '',
			logged_by   TEXT NOT NULL DEFAULT '',
			occurred_at TEXT NOT NULL DEFAULT ''
		)`,
}

// rebind pasa los placeholders "?" a "$n" para Postgres.
func rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}

	var sb strings.Builder
	n := 1
	for _, r := range query {
		if r == '?' {
			sb.WriteString("$" + strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
