package feeds

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"baby-feed-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Service es el registro compartido. Todas las operaciones toman el mismo
// lock global durante el ciclo completo leer-modificar-persistir: la tabla
// física no tolera escritores concurrentes y no hay distinción lector/escritor.
type Service struct {
	mu    sync.Mutex
	table Table

	now  func() time.Time
	loc  *time.Location
	unit VolumeUnit
	log  logger.Logger
}

type Options struct {
	Location *time.Location // default time.Local
	Unit     VolumeUnit     // default ml
	Logger   logger.Logger  // default nop
}

func NewService(table Table, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	unit := opts.Unit
	if unit == "" {
		unit = UnitML
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		table: table,
		now:   time.Now,
		loc:   loc,
		unit:  unit,
		log:   log.With(map[string]any{"component": "feeds"}),
	}
}

func (s *Service) Unit() VolumeUnit { return s.unit }

func (s *Service) Location() *time.Location { return s.loc }

// Now devuelve la hora actual en la zona local configurada.
func (s *Service) Now() time.Time { return s.now().In(s.loc) }

// Create agrega el evento al final y devuelve su ID posicional.
// No valida campos opcionales; solo falla por error de I/O.
func (s *Service) Create(ctx context.Context, e Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createLocked(ctx, e)
}

// Query devuelve los eventos que matchean el filtro en orden de archivo.
// Las filas cortas o sin timestamp se saltean.
func (s *Service) Query(ctx context.Context, f Filter) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Event, 0, len(all))
	for _, e := range all {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Update sobrescribe todos los campos de la fila id. Si e no trae
// OccurredAt se conserva el timestamp guardado. La fila no se mueve aunque
// la nueva fecha la saque del rango que consultó el caller.
func (s *Service) Update(ctx context.Context, id int, e Event) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 1 {
		return false, nil
	}

	e.Notes = vitaminNotes(e)

	keep := e.OccurredAt.IsZero()
	if !keep {
		e.OccurredAt = s.normalize(e.OccurredAt)
	}

	ok, err := s.table.Update(ctx, id, func(old Row) Row {
		if keep {
			e.OccurredAt = s.previousTimestamp(old)
		}
		return EncodeRow(e)
	})
	if err != nil {
		return false, fmt.Errorf("update feed %d: %w", id, err)
	}
	return ok, nil
}

// Delete borra la fila id; los IDs siguientes bajan en uno.
func (s *Service) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id < 1 {
		return false, nil
	}

	ok, err := s.table.Remove(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete feed %d: %w", id, err)
	}
	return ok, nil
}

func (s *Service) createLocked(ctx context.Context, e Event) (int, error) {
	e.OccurredAt = s.normalize(e.OccurredAt)
	e.Notes = vitaminNotes(e)

	id, err := s.table.Append(ctx, EncodeRow(e))
	if err != nil {
		return 0, fmt.Errorf("append feed: %w", err)
	}
	return id, nil
}

func (s *Service) loadLocked(ctx context.Context) ([]Event, error) {
	rows, err := s.table.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("read feeds: %w", err)
	}

	out := make([]Event, 0, len(rows))
	for i, r := range rows {
		e, ok := DecodeRow(i+1, r, s.loc)
		if !ok {
			s.log.Debug("skipping malformed row", map[string]any{"row": i + 2, "cells": len(r)})
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// normalize lleva t a hora local al segundo; cero => ahora.
func (s *Service) normalize(t time.Time) time.Time {
	if t.IsZero() {
		t = s.now()
	}
	return t.In(s.loc).Truncate(time.Second)
}

func (s *Service) previousTimestamp(old Row) time.Time {
	if len(old) > colTimestamp {
		if t, err := ParseTimestamp(old[colTimestamp], s.loc); err == nil {
			return t
		}
	}
	return s.normalize(time.Time{})
}

// vitaminNotes devuelve las notas a guardar: una dosis de vitamina solo
// admite VitaminGiven o VitaminMissed, cualquier otro valor cuenta como dada.
func vitaminNotes(e Event) string {
	if !e.IsVitamin() || e.Notes == VitaminGiven || e.Notes == VitaminMissed {
		return e.Notes
	}
	return VitaminGiven
}
