package feeds

import "time"

// Event es una entrada del registro.
//
// ID es posicional: fila física menos el header. Borrar la fila k corre
// una posición hacia abajo el ID de todas las filas siguientes, así que
// no sirve como clave durable entre operaciones.
type Event struct {
	ID int

	Kind Kind
	// Qualifier vacío en nurse o pump se guarda como "(Both)" y vuelve
	// como QualifierBoth al leer.
	Qualifier Qualifier

	Amount   *float64
	Duration *float64

	Notes    string
	LoggedBy string

	OccurredAt time.Time
}

// Date devuelve la fecha local (YYYY-MM-DD) usada para filtrar.
func (e Event) Date() string {
	return e.OccurredAt.Format(dateLayout)
}

// Time devuelve la hora en formato 12h, p.ej. "03:02 AM".
func (e Event) Time() string {
	return e.OccurredAt.Format(clockLayout)
}

func (e Event) IsVitamin() bool {
	return e.Kind == KindVitaminDose
}

// Filter selecciona filas por fecha. Vacío = todas.
// Si vienen ambos campos, Date tiene prioridad.
type Filter struct {
	Date    string // YYYY-MM-DD exacto
	MinDate string // YYYY-MM-DD inclusive
}

func (f Filter) match(e Event) bool {
	d := e.Date()
	if f.Date != "" {
		return d == f.Date
	}
	if f.MinDate != "" {
		return d >= f.MinDate
	}
	return true
}
