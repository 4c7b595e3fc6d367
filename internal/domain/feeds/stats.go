package feeds

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Summary acompaña al listado de eventos.
// Las dosis de vitamina no participan de ningún campo.
type Summary struct {
	LastEventMinutesAgo *int
	LastEventSummary    *string

	LastDiaperMinutesAgo *int
	LastDiaperSummary    *string

	TotalVolume float64
	TotalCount  int
}

// Stats es la variante estricta de /stats: solo bottle suma a TotalFeeds/TotalVolume.
type Stats struct {
	TotalVolume     float64
	TotalFeeds      int
	NursingSessions int
	PumpVolume      float64
	DiaperChanges   int

	// nil con menos de dos eventos.
	AvgFeedIntervalMinutes *int
}

// Summarize calcula el resumen sobre una lista ya filtrada por fecha.
// Ante timestamps iguales gana el primero en orden de archivo.
func Summarize(events []Event, now time.Time, unit VolumeUnit) Summary {
	var (
		sum        Summary
		lastEvent  *Event
		lastDiaper *Event
	)

	for i := range events {
		e := &events[i]
		if e.IsVitamin() {
			continue
		}

		sum.TotalCount++
		if e.Amount != nil {
			sum.TotalVolume += *e.Amount
		}

		if lastEvent == nil || e.OccurredAt.After(lastEvent.OccurredAt) {
			lastEvent = e
		}
		if e.Kind == KindDiaper && (lastDiaper == nil || e.OccurredAt.After(lastDiaper.OccurredAt)) {
			lastDiaper = e
		}
	}

	sum.TotalVolume = round1(sum.TotalVolume)

	if lastEvent != nil {
		ago := minutesSince(now, lastEvent.OccurredAt)
		txt := describeEvent(*lastEvent, unit)
		sum.LastEventMinutesAgo = &ago
		sum.LastEventSummary = &txt
	}
	if lastDiaper != nil {
		ago := minutesSince(now, lastDiaper.OccurredAt)
		txt := Label(lastDiaper.Kind, lastDiaper.Qualifier) + " at " + lastDiaper.Time()
		sum.LastDiaperMinutesAgo = &ago
		sum.LastDiaperSummary = &txt
	}

	return sum
}

// DailyStats calcula los totales de /stats.
func DailyStats(events []Event) Stats {
	var (
		st    Stats
		times []time.Time
	)

	for _, e := range events {
		if e.IsVitamin() {
			continue
		}

		switch e.Kind {
		case KindBottle:
			st.TotalFeeds++
			if e.Amount != nil {
				st.TotalVolume += *e.Amount
			}
		case KindNurse:
			st.NursingSessions++
		case KindPump:
			if e.Amount != nil {
				st.PumpVolume += *e.Amount
			}
		case KindDiaper:
			st.DiaperChanges++
		}

		times = append(times, wallClock(e.OccurredAt))
	}

	st.TotalVolume = round1(st.TotalVolume)
	st.PumpVolume = round1(st.PumpVolume)

	if len(times) > 1 {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		var total time.Duration
		for i := 1; i < len(times); i++ {
			total += times[i].Sub(times[i-1])
		}
		avg := int(total.Minutes() / float64(len(times)-1))
		st.AvgFeedIntervalMinutes = &avg
	}

	return st
}

// describeEvent: "Feed (Bottle) — 90 ml — 10 min at 03:02 AM".
func describeEvent(e Event, unit VolumeUnit) string {
	parts := []string{Label(e.Kind, e.Qualifier)}
	if e.Amount != nil && *e.Amount != 0 {
		parts = append(parts, FormatNumber(e.Amount)+" "+string(unit))
	}
	if e.Duration != nil && *e.Duration != 0 {
		parts = append(parts, FormatNumber(e.Duration)+" min")
	}
	return strings.Join(parts, " — ") + " at " + e.Time()
}

// minutesSince resta relojes de pared, sin considerar zona ni DST.
func minutesSince(now, t time.Time) int {
	return int(wallClock(now).Sub(wallClock(t)).Minutes())
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
