package sqldb

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"baby-feed-tracker/internal/domain/feeds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `UPDATE feed_log SET notes = ? WHERE seq = ?`
	assert.Equal(t, `UPDATE feed_log SET notes = $1 WHERE seq = $2`, rebind(DriverPostgres, q))
	assert.Equal(t, q, rebind(DriverSQLite, q))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open("mysql", "whatever")
	require.Error(t, err)
}

func openSQLite(t *testing.T) *FeedsTable {
	t.Helper()
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "feeds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewFeedsTable(db, DriverSQLite)
}

func TestFeedsTable_SQLite(t *testing.T) {
	exerciseTable(t, openSQLite(t))
}

// Con FEEDS_TEST_PG_DSN se corre el mismo escenario contra Postgres.
func TestFeedsTable_Postgres(t *testing.T) {
	dsn := os.Getenv("FEEDS_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("FEEDS_TEST_PG_DSN not set")
	}
	db, err := Open(DriverPostgres, dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`TRUNCATE feed_log`)
	require.NoError(t, err)

	exerciseTable(t, NewFeedsTable(db, DriverPostgres))
}

func exerciseTable(t *testing.T, tbl *FeedsTable) {
	t.Helper()
	ctx := context.Background()

	svc := feeds.NewService(tbl, feeds.Options{Location: time.UTC})

	at := func(h int) time.Time { return time.Date(2026, 2, 10, h, 0, 0, 0, time.UTC) }
	ml := func(v float64) *float64 { return &v }

	for i, e := range []feeds.Event{
		{Kind: feeds.KindBottle, Amount: ml(90), OccurredAt: at(1)},
		{Kind: feeds.KindNurse, Qualifier: feeds.QualifierLeft, Duration: ml(12), OccurredAt: at(2)},
		{Kind: feeds.KindDiaper, Qualifier: feeds.QualifierPee, Notes: "it's \"wet\"\nvery", OccurredAt: at(3)},
	} {
		id, err := svc.Create(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, i+1, id)
	}

	ok, err := svc.Delete(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := svc.Query(ctx, feeds.Filter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, feeds.KindNurse, got[0].Kind)
	assert.Equal(t, 1, got[0].ID, "ids shift down after delete")
	assert.Equal(t, "it's \"wet\"\nvery", got[1].Notes)

	ok, err = svc.Update(ctx, 2, feeds.Event{Kind: feeds.KindDiaper, Qualifier: feeds.QualifierPoop})
	require.NoError(t, err)
	require.True(t, ok)

	got, err = svc.Query(ctx, feeds.Filter{})
	require.NoError(t, err)
	assert.Equal(t, feeds.QualifierPoop, got[1].Qualifier)
	assert.True(t, got[1].OccurredAt.Equal(at(3)), "timestamp preserved when omitted")

	ok, err = svc.Update(ctx, 3, feeds.Event{Kind: feeds.KindBottle})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Delete(ctx, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}
