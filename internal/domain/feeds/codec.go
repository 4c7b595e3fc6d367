package feeds

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout      = "2006-01-02"
	clockLayout     = "03:04 PM"
	timestampLayout = "2006-01-02T15:04:05"
)

// RowWidth es la cantidad de columnas de una fila completa.
const RowWidth = 8

// Índices de columna dentro de Row.
const (
	colDate = iota
	colTime
	colType
	colAmount
	colDuration
	colNotes
	colLoggedBy
	colTimestamp
)

// Row es la representación persistida de un evento: una celda de texto
// por columna, en el mismo orden que Header.
type Row []string

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// Header devuelve la fila de encabezado; la unidad de volumen va en la
// columna Amount porque depende del despliegue.
func Header(unit VolumeUnit) []string {
	if unit == "" {
		unit = UnitML
	}
	return []string{
		"Date",
		"Time",
		"Type",
		"Amount (" + string(unit) + ")",
		"Duration (min)",
		"Notes",
		"Logged By",
		"Timestamp",
	}
}

// EncodeRow arma la fila a partir del evento. Date/Time son caches de
// display derivadas de OccurredAt; Timestamp es la fuente de verdad.
func EncodeRow(e Event) Row {
	return Row{
		colDate:      e.OccurredAt.Format(dateLayout),
		colTime:      e.OccurredAt.Format(clockLayout),
		colType:      Label(e.Kind, e.Qualifier),
		colAmount:    FormatNumber(e.Amount),
		colDuration:  FormatNumber(e.Duration),
		colNotes:     e.Notes,
		colLoggedBy:  e.LoggedBy,
		colTimestamp: FormatTimestamp(e.OccurredAt),
	}
}

// DecodeRow reconstruye el evento de la fila en la posición id.
// ok=false significa "saltear": fila corta o sin timestamp interpretable.
func DecodeRow(id int, r Row, loc *time.Location) (Event, bool) {
	if len(r) < RowWidth {
		return Event{}, false
	}

	ts, err := ParseTimestamp(r[colTimestamp], loc)
	if err != nil {
		return Event{}, false
	}

	kind, q := ParseLabel(r[colType])

	return Event{
		ID:         id,
		Kind:       kind,
		Qualifier:  q,
		Amount:     ParseNumber(r[colAmount]),
		Duration:   ParseNumber(r[colDuration]),
		Notes:      r[colNotes],
		LoggedBy:   r[colLoggedBy],
		OccurredAt: ts,
	}, true
}

// FormatTimestamp devuelve la forma canónica: hora local sin offset.
func FormatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}

// ParseTimestamp acepta la forma canónica (con o sin segundos/fracción) y
// también RFC3339 con offset o sufijo Z. Los valores con offset se pasan
// a la hora local de loc; los valores sin offset se interpretan en loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc), nil
	}

	for _, layout := range []string{timestampLayout, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

// FormatNumber usa la representación decimal más corta (90, 75.5).
// nil => celda vacía.
func FormatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func ParseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Label es el texto de la columna Type.
func Label(k Kind, q Qualifier) string {
	switch k {
	case KindBottle:
		switch q {
		case QualifierFormula:
			return "Feed (Bottle - Formula)"
		case QualifierMilk:
			return "Feed (Bottle - Milk)"
		default:
			return "Feed (Bottle)"
		}
	case KindNurse:
		return "Nurse (" + sideLabel(q) + ")"
	case KindPump:
		return "Pump (" + sideLabel(q) + ")"
	case KindDiaper:
		switch q {
		case QualifierPee:
			return "Diaper (Pee)"
		case QualifierPoop:
			return "Diaper (Poop)"
		case QualifierBoth:
			return "Diaper (Both)"
		default:
			return "Diaper"
		}
	case KindVitaminDose:
		return "Vitamin D"
	}
	return string(k)
}

// Sin lado explícito, nurse/pump se registran como "Both".
func sideLabel(q Qualifier) string {
	switch q {
	case QualifierLeft:
		return "Left"
	case QualifierRight:
		return "Right"
	default:
		return "Both"
	}
}

type labelEntry struct {
	kind Kind
	q    Qualifier
}

var labels = func() map[string]labelEntry {
	m := map[string]labelEntry{}
	add := func(k Kind, qs ...Qualifier) {
		for _, q := range qs {
			m[Label(k, q)] = labelEntry{kind: k, q: q}
		}
	}
	add(KindBottle, QualifierNone, QualifierFormula, QualifierMilk)
	add(KindNurse, QualifierLeft, QualifierRight, QualifierBoth)
	add(KindPump, QualifierLeft, QualifierRight, QualifierBoth)
	add(KindDiaper, QualifierNone, QualifierPee, QualifierPoop, QualifierBoth)
	add(KindVitaminDose, QualifierNone)
	return m
}()

// ParseLabel es la inversa de Label. Un label desconocido se conserva
// tal cual como Kind para no perder el dato.
func ParseLabel(s string) (Kind, Qualifier) {
	s = strings.TrimSpace(s)
	if e, ok := labels[s]; ok {
		return e.kind, e.q
	}
	return Kind(s), QualifierNone
}
