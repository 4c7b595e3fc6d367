package memory

import (
	"context"

	"baby-feed-tracker/internal/domain/feeds"
)

// feedTable guarda las filas en un slice; la posición en el slice es el ID.
// Sin lock propio: feeds.Service serializa el acceso.
type feedTable struct {
	rows []feeds.Row
}

func NewFeedTable() feeds.Table {
	return &feedTable{}
}

// NewFeedTableWithRows precarga filas tal cual (incluidas filas cortas), útil en dev/tests.
func NewFeedTableWithRows(rows ...feeds.Row) feeds.Table {
	t := &feedTable{}
	for _, r := range rows {
		t.rows = append(t.rows, clone(r))
	}
	return t
}

func (t *feedTable) Rows(ctx context.Context) ([]feeds.Row, error) {
	out := make([]feeds.Row, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, clone(r))
	}
	return out, nil
}

func (t *feedTable) Append(ctx context.Context, r feeds.Row) (int, error) {
	t.rows = append(t.rows, clone(r))
	return len(t.rows), nil
}

func (t *feedTable) Update(ctx context.Context, id int, fn func(feeds.Row) feeds.Row) (bool, error) {
	if id < 1 || id > len(t.rows) {
		return false, nil
	}
	t.rows[id-1] = clone(fn(clone(t.rows[id-1])))
	return true, nil
}

func (t *feedTable) Remove(ctx context.Context, id int) (bool, error) {
	if id < 1 || id > len(t.rows) {
		return false, nil
	}
	t.rows = append(t.rows[:id-1], t.rows[id:]...)
	return true, nil
}

func clone(r feeds.Row) feeds.Row {
	return append(feeds.Row(nil), r...)
}
