package feeds

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countVitamins(t *testing.T, svc *Service, date string) []Event {
	t.Helper()
	got, err := svc.Query(context.Background(), Filter{Date: date})
	require.NoError(t, err)

	out := make([]Event, 0)
	for _, e := range got {
		if e.IsVitamin() {
			out = append(out, e)
		}
	}
	return out
}

func TestVitaminStatus_NotGiven(t *testing.T) {
	svc := newTestService(&testTable{}, at(10, 12, 0))

	st, err := svc.VitaminStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, st.GivenToday)
	assert.Nil(t, st.EventID)
	assert.Nil(t, st.GivenAt)
	assert.False(t, st.MissedDoseLogged, "no activity yesterday, nothing to backfill")
}

func TestVitaminStatus_GivenToday(t *testing.T) {
	svc := newTestService(&testTable{}, at(10, 12, 0))
	ctx := context.Background()

	_, err := svc.Create(ctx, Event{Kind: KindBottle, OccurredAt: at(10, 1, 0)})
	require.NoError(t, err)
	id, err := svc.LogVitamin(ctx, "Dad")
	require.NoError(t, err)

	st, err := svc.VitaminStatus(ctx)
	require.NoError(t, err)
	require.True(t, st.GivenToday)
	assert.Equal(t, id, *st.EventID)
	assert.True(t, st.GivenAt.Equal(at(10, 12, 0)))

	v := countVitamins(t, svc, "2026-02-10")
	require.Len(t, v, 1)
	assert.Equal(t, VitaminGiven, v[0].Notes)
	assert.Equal(t, "Dad", v[0].LoggedBy)

	// borrar la dosis resetea el estado
	ok, err := svc.Delete(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	st, err = svc.VitaminStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.GivenToday)
}

func TestVitaminStatus_BackfillsMissedDose_Once(t *testing.T) {
	svc := newTestService(&testTable{}, at(10, 8, 0))
	ctx := context.Background()

	_, err := svc.Create(ctx, Event{Kind: KindNurse, Qualifier: QualifierLeft, OccurredAt: at(9, 18, 45)})
	require.NoError(t, err)

	st, err := svc.VitaminStatus(ctx)
	require.NoError(t, err)
	assert.True(t, st.MissedDoseLogged)
	assert.False(t, st.GivenToday, "yesterday's backfill is not today's dose")

	st, err = svc.VitaminStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.MissedDoseLogged)

	v := countVitamins(t, svc, "2026-02-09")
	require.Len(t, v, 1)
	assert.Equal(t, VitaminMissed, v[0].Notes)
	assert.Equal(t, AutoCaregiver, v[0].LoggedBy)
	assert.Equal(t, "11:59 PM", v[0].Time())
	assert.True(t, v[0].OccurredAt.Equal(at(9, 23, 59)))
}

func TestVitaminStatus_ConcurrentReads_BackfillOnce(t *testing.T) {
	svc := newTestService(&testTable{}, at(10, 8, 0))
	ctx := context.Background()

	_, err := svc.Create(ctx, Event{Kind: KindBottle, OccurredAt: at(9, 21, 0)})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.VitaminStatus(ctx)
		}()
	}
	wg.Wait()

	assert.Len(t, countVitamins(t, svc, "2026-02-09"), 1)
}

func TestVitaminStatus_NoBackfillWhenYesterdayHadDose(t *testing.T) {
	svc := newTestService(&testTable{}, at(10, 8, 0))
	ctx := context.Background()

	_, _ = svc.Create(ctx, Event{Kind: KindBottle, OccurredAt: at(9, 21, 0)})
	_, _ = svc.Create(ctx, Event{Kind: KindVitaminDose, Notes: VitaminGiven, OccurredAt: at(9, 9, 0)})

	st, err := svc.VitaminStatus(ctx)
	require.NoError(t, err)
	assert.False(t, st.MissedDoseLogged)
	assert.Len(t, countVitamins(t, svc, "2026-02-09"), 1)
}

func TestMissedDose_Predicate(t *testing.T) {
	now := at(10, 0, 30)

	_, ok := MissedDose(nil, now)
	assert.False(t, ok)

	// actividad de anteayer no cuenta
	_, ok = MissedDose([]Event{{Kind: KindBottle, OccurredAt: at(8, 10, 0)}}, now)
	assert.False(t, ok)

	when, ok := MissedDose([]Event{{Kind: KindDiaper, OccurredAt: at(9, 0, 0)}}, now)
	require.True(t, ok)
	assert.True(t, when.Equal(at(9, 23, 59)))
}
