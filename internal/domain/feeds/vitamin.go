package feeds

import (
	"context"
	"time"
)

// VitaminStatus describe la dosis del día.
type VitaminStatus struct {
	GivenToday bool
	EventID    *int
	GivenAt    *time.Time

	// MissedDoseLogged indica que esta lectura registró la dosis faltante de ayer.
	MissedDoseLogged bool
}

// VitaminStatus informa si hoy ya se dio la dosis y, de paso, registra la
// dosis de ayer como "No" si ayer hubo actividad pero ninguna dosis.
//
// Lectura y backfill ocurren bajo una única toma del lock, así dos lecturas
// simultáneas no pueden sintetizar dos registros para el mismo día.
func (s *Service) VitaminStatus(ctx context.Context) (VitaminStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadLocked(ctx)
	if err != nil {
		return VitaminStatus{}, err
	}

	now := s.Now()
	today := now.Format(dateLayout)

	var st VitaminStatus
	for _, e := range all {
		if e.IsVitamin() && e.Date() == today {
			id, at := e.ID, e.OccurredAt
			st.GivenToday = true
			st.EventID = &id
			st.GivenAt = &at
			break
		}
	}

	at, missed := MissedDose(all, now)
	if missed {
		id, err := s.createLocked(ctx, Event{
			Kind:       KindVitaminDose,
			Notes:      VitaminMissed,
			LoggedBy:   AutoCaregiver,
			OccurredAt: at,
		})
		if err != nil {
			return VitaminStatus{}, err
		}
		st.MissedDoseLogged = true
		s.log.Info("missed vitamin dose logged", map[string]any{"id": id, "date": at.Format(dateLayout)})
	}

	return st, nil
}

// LogVitamin registra la dosis dada ahora.
func (s *Service) LogVitamin(ctx context.Context, loggedBy string) (int, error) {
	return s.Create(ctx, Event{
		Kind:     KindVitaminDose,
		Notes:    VitaminGiven,
		LoggedBy: loggedBy,
	})
}

// MissedDose es el predicado del reconciliador: ayer (respecto de now) tuvo
// al menos un evento que no es vitamina y ninguna dosis. Devuelve el
// instante a registrar, 23:59:00 de ayer en la zona de now.
//
// Es idempotente por construcción: una vez registrada la dosis, ayer ya
// tiene vitamina y el predicado da false.
func MissedDose(events []Event, now time.Time) (time.Time, bool) {
	y := now.AddDate(0, 0, -1)
	yesterday := y.Format(dateLayout)

	active, dosed := false, false
	for _, e := range events {
		if e.Date() != yesterday {
			continue
		}
		if e.IsVitamin() {
			dosed = true
			break
		}
		active = true
	}

	if !active || dosed {
		return time.Time{}, false
	}
	return time.Date(y.Year(), y.Month(), y.Day(), 23, 59, 0, 0, now.Location()), true
}
