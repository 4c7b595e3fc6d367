package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"baby-feed-tracker/internal/domain/feeds"
)

const feedCols = `entry_date, entry_time, entry_type, amount, duration, notes, logged_by, occurred_at`

// FeedsTable guarda el registro en la tabla feed_log. La posición k es la
// k-ésima fila por seq, igual que una fila física en la planilla.
type FeedsTable struct {
	db     *sql.DB
	driver string
}

func NewFeedsTable(db *sql.DB, driver string) *FeedsTable {
	return &FeedsTable{db: db, driver: driver}
}

func (t *FeedsTable) Rows(ctx context.Context) ([]feeds.Row, error) {
	rows, err := t.db.QueryContext(ctx, `SELECT `+feedCols+` FROM feed_log ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]feeds.Row, 0)
	for rows.Next() {
		r := make(feeds.Row, feeds.RowWidth)
		if err := rows.Scan(&r[0], &r[1], &r[2], &r[3], &r[4], &r[5], &r[6], &r[7]); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t *FeedsTable) Append(ctx context.Context, r feeds.Row) (int, error) {
	_, err := t.db.ExecContext(ctx, t.q(`
		INSERT INTO feed_log (`+feedCols+`)
		VALUES (?,?,?,?,?,?,?,?)
	`), args(r)...)
	if err != nil {
		return 0, err
	}

	var n int
	if err := t.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM feed_log`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *FeedsTable) Update(ctx context.Context, id int, fn func(feeds.Row) feeds.Row) (bool, error) {
	if id < 1 {
		return false, nil
	}

	row := t.db.QueryRowContext(ctx, t.q(`
		SELECT seq, `+feedCols+`
		FROM feed_log
		ORDER BY seq
		LIMIT 1 OFFSET ?
	`), id-1)

	var seq int64
	old := make(feeds.Row, feeds.RowWidth)
	if err := row.Scan(&seq, &old[0], &old[1], &old[2], &old[3], &old[4], &old[5], &old[6], &old[7]); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	_, err := t.db.ExecContext(ctx, t.q(`
		UPDATE feed_log
		SET entry_date = ?, entry_time = ?, entry_type = ?,
			amount = ?, duration = ?, notes = ?,
			logged_by = ?, occurred_at = ?
		WHERE seq = ?
	`), append(args(fn(old)), seq)...)
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *FeedsTable) Remove(ctx context.Context, id int) (bool, error) {
	if id < 1 {
		return false, nil
	}

	var seq int64
	err := t.db.QueryRowContext(ctx, t.q(`SELECT seq FROM feed_log ORDER BY seq LIMIT 1 OFFSET ?`), id-1).Scan(&seq)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	res, err := t.db.ExecContext(ctx, t.q(`DELETE FROM feed_log WHERE seq = ?`), seq)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (t *FeedsTable) q(query string) string {
	return rebind(t.driver, query)
}

// args completa con "" las columnas que falten.
func args(r feeds.Row) []any {
	out := make([]any, feeds.RowWidth)
	for i := range out {
		if i < len(r) {
			out[i] = r[i]
		} else {
			out[i] = ""
		}
	}
	return out
}
