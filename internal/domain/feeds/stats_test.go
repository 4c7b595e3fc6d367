package feeds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_TotalsAndLastEvent(t *testing.T) {
	now := at(10, 6, 0)
	events := []Event{
		{ID: 1, Kind: KindBottle, Amount: num(90), OccurredAt: at(10, 1, 0)},
		{ID: 2, Kind: KindBottle, Amount: num(75), Duration: num(10), OccurredAt: at(10, 3, 30)},
		{ID: 3, Kind: KindNurse, Qualifier: QualifierLeft, OccurredAt: at(10, 2, 0)},
		{ID: 4, Kind: KindDiaper, Qualifier: QualifierPee, OccurredAt: at(10, 2, 15)},
		{ID: 5, Kind: KindVitaminDose, Notes: VitaminGiven, OccurredAt: at(10, 5, 0)},
	}

	s := Summarize(events, now, UnitML)

	assert.Equal(t, 165.0, s.TotalVolume)
	assert.Equal(t, 4, s.TotalCount, "vitamin excluded, entries without volume still count")

	require.NotNil(t, s.LastEventMinutesAgo)
	assert.Equal(t, 150, *s.LastEventMinutesAgo)
	require.NotNil(t, s.LastEventSummary)
	assert.Equal(t, "Feed (Bottle) — 75 ml — 10 min at 03:30 AM", *s.LastEventSummary)

	require.NotNil(t, s.LastDiaperMinutesAgo)
	assert.Equal(t, 225, *s.LastDiaperMinutesAgo)
	assert.Equal(t, "Diaper (Pee) at 02:15 AM", *s.LastDiaperSummary)
}

func TestSummarize_Empty_And_VitaminOnly(t *testing.T) {
	s := Summarize(nil, at(10, 6, 0), UnitML)
	assert.Nil(t, s.LastEventMinutesAgo)
	assert.Nil(t, s.LastEventSummary)
	assert.Nil(t, s.LastDiaperSummary)
	assert.Zero(t, s.TotalCount)

	s = Summarize([]Event{{Kind: KindVitaminDose, Notes: VitaminGiven, OccurredAt: at(10, 5, 0)}}, at(10, 6, 0), UnitML)
	assert.Nil(t, s.LastEventSummary, "vitamin never shows as last event")
	assert.Zero(t, s.TotalVolume)
	assert.Zero(t, s.TotalCount)
}

func TestSummarize_TieKeepsFileOrder(t *testing.T) {
	events := []Event{
		{ID: 1, Kind: KindNurse, Qualifier: QualifierRight, OccurredAt: at(10, 3, 0)},
		{ID: 2, Kind: KindBottle, OccurredAt: at(10, 3, 0)},
	}
	s := Summarize(events, at(10, 4, 0), UnitOZ)
	assert.Equal(t, "Nurse (Right) at 03:00 AM", *s.LastEventSummary)
}

func TestSummarize_MinutesAreWallClock(t *testing.T) {
	// cruce de DST: el reloj de pared marca 3h aunque pasaron 2h reales
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata not available: %v", err)
	}
	ev := Event{Kind: KindBottle, OccurredAt: time.Date(2026, 3, 8, 1, 0, 0, 0, ny)}
	now := time.Date(2026, 3, 8, 4, 0, 0, 0, ny)

	s := Summarize([]Event{ev}, now, UnitML)
	assert.Equal(t, 180, *s.LastEventMinutesAgo)
}

func TestDailyStats(t *testing.T) {
	events := []Event{
		{Kind: KindBottle, Amount: num(90), OccurredAt: at(10, 1, 0)},
		{Kind: KindBottle, Amount: num(75), OccurredAt: at(10, 5, 0)},
		{Kind: KindBottle, OccurredAt: at(10, 3, 0)},
		{Kind: KindNurse, Qualifier: QualifierLeft, Amount: num(40), OccurredAt: at(10, 7, 0)},
		{Kind: KindPump, Qualifier: QualifierBoth, Amount: num(120.25), OccurredAt: at(10, 9, 0)},
		{Kind: KindDiaper, Qualifier: QualifierPoop, OccurredAt: at(10, 11, 0)},
		{Kind: KindVitaminDose, Notes: VitaminGiven, OccurredAt: at(10, 23, 0)},
	}

	st := DailyStats(events)

	assert.Equal(t, 165.0, st.TotalVolume, "only bottles count toward volume")
	assert.Equal(t, 3, st.TotalFeeds)
	assert.Equal(t, 1, st.NursingSessions)
	assert.Equal(t, 120.3, st.PumpVolume)
	assert.Equal(t, 1, st.DiaperChanges)

	// 6 eventos de 01:00 a 11:00 => 600 min / 5 gaps
	require.NotNil(t, st.AvgFeedIntervalMinutes)
	assert.Equal(t, 120, *st.AvgFeedIntervalMinutes)
}

func TestDailyStats_AverageInterval(t *testing.T) {
	three := []Event{
		{Kind: KindBottle, OccurredAt: at(10, 5, 0)},
		{Kind: KindBottle, OccurredAt: at(10, 1, 0)},
		{Kind: KindBottle, OccurredAt: at(10, 3, 0)},
	}
	st := DailyStats(three)
	require.NotNil(t, st.AvgFeedIntervalMinutes)
	assert.Equal(t, 120, *st.AvgFeedIntervalMinutes)

	assert.Nil(t, DailyStats(three[:1]).AvgFeedIntervalMinutes)
	assert.Nil(t, DailyStats(nil).AvgFeedIntervalMinutes)

	// la vitamina no cuenta como segundo evento
	st = DailyStats([]Event{three[0], {Kind: KindVitaminDose, OccurredAt: at(10, 9, 0)}})
	assert.Nil(t, st.AvgFeedIntervalMinutes)
}
