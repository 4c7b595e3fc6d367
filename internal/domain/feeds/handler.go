package feeds

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"baby-feed-tracker/internal/middleware"
	"baby-feed-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	h := &handlers{svc: svc, log: log.With(map[string]any{"component": "feeds.http"})}

	r.Route("/feeds", func(fr chi.Router) {
		fr.Get("/", h.listFeeds)
		fr.Post("/", h.createFeed)
		fr.Put("/{id}", h.updateFeed)
		fr.Delete("/{id}", h.deleteFeed)
	})

	r.Get("/vitamin-status", h.vitaminStatus)
	r.Post("/vitamin", h.logVitamin)
	r.Get("/stats", h.stats)
}

type handlers struct {
	svc *Service
	log logger.Logger
}

// feedRequest acepta los nombres de campo históricos (amount_ml,
// duration_min) además de los genéricos. Campos desconocidos se ignoran.
type feedRequest struct {
	Type        string   `json:"type"`
	Side        string   `json:"side"`
	Amount      *float64 `json:"amount"`
	AmountML    *float64 `json:"amount_ml"`
	AmountOZ    *float64 `json:"amount_oz"`
	Duration    *float64 `json:"duration"`
	DurationMin *float64 `json:"duration_min"`
	Notes       string   `json:"notes"`
	LoggedBy    string   `json:"logged_by"`
	Timestamp   string   `json:"timestamp"` // RFC3339 o YYYY-MM-DDTHH:MM[:SS] local
}

type feedResponse struct {
	ID          int      `json:"id"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Type        string   `json:"type"`
	Kind        Kind     `json:"kind"`
	Side        string   `json:"side,omitempty"`
	Amount      *float64 `json:"amount"`
	DurationMin *float64 `json:"duration_min"`
	Notes       string   `json:"notes"`
	LoggedBy    string   `json:"logged_by"`
	Timestamp   string   `json:"timestamp"`
}

type listFeedsResponse struct {
	Feeds                []feedResponse `json:"feeds"`
	LastFeedMinutesAgo   *int           `json:"last_feed_minutes_ago"`
	LastFeedSummary      *string        `json:"last_feed_summary"`
	LastDiaperMinutesAgo *int           `json:"last_diaper_minutes_ago"`
	LastDiaperSummary    *string        `json:"last_diaper_summary"`
	TotalVolumeToday     float64        `json:"total_volume_today"`
	TotalFeedsToday      int            `json:"total_feeds_today"`
	Unit                 VolumeUnit     `json:"unit"`
}

type mutationResponse struct {
	Success bool   `json:"success"`
	ID      int    `json:"id,omitempty"`
	Message string `json:"message"`
}

type vitaminStatusResponse struct {
	GivenToday       bool    `json:"given_today"`
	VitaminFeedID    *int    `json:"vitamin_feed_id"`
	TimeGiven        *string `json:"time_given"`
	MissedDoseLogged bool    `json:"missed_dose_logged"`
}

type logVitaminRequest struct {
	LoggedBy string `json:"logged_by"`
}

type statsResponse struct {
	Today todayStats `json:"today"`
}

type todayStats struct {
	TotalVolume          float64    `json:"total_volume"`
	TotalFeeds           int        `json:"total_feeds"`
	TotalNursingSessions int        `json:"total_nursing_sessions"`
	TotalPumpVolume      float64    `json:"total_pump_volume"`
	AvgFeedIntervalMin   *int       `json:"avg_feed_interval_min"`
	TotalDiaperChanges   int        `json:"total_diaper_changes"`
	Unit                 VolumeUnit `json:"unit"`
}

// listFeeds godoc
// @Summary Listar eventos
// @Description Devuelve los eventos del día (por defecto hoy) ordenados del más reciente al más antiguo, junto con el resumen: minutos desde la última toma y el último pañal, volumen y cantidad del período. Las dosis de vitamina aparecen en la lista pero no en el resumen.
// @Tags feeds
// @Produce json
// @Param date query string false "Fecha exacta YYYY-MM-DD"
// @Param limit_days query int false "Incluye desde hoy menos N días"
// @Success 200 {object} listFeedsResponse
// @Failure 400 {string} string "invalid date / invalid limit_days"
// @Failure 500 {string} string "internal error"
// @Router /api/feeds [get]
func (h *handlers) listFeeds(w http.ResponseWriter, r *http.Request) {
	now := h.svc.Now()
	q := r.URL.Query()

	var f Filter
	if raw := strings.TrimSpace(q.Get("limit_days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit_days", http.StatusBadRequest)
			return
		}
		if n > 0 {
			f.MinDate = now.AddDate(0, 0, -n).Format(dateLayout)
		}
	}
	if f.MinDate == "" {
		f.Date = strings.TrimSpace(q.Get("date"))
		if f.Date == "" {
			f.Date = now.Format(dateLayout)
		} else if _, err := time.Parse(dateLayout, f.Date); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	items, err := h.svc.Query(r.Context(), f)
	if err != nil {
		h.internalError(w, "query feeds", err)
		return
	}

	sum := Summarize(items, now, h.svc.Unit())

	// Más reciente primero; a igual timestamp se respeta el orden de archivo.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OccurredAt.After(items[j].OccurredAt)
	})

	out := make([]feedResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toFeedResponse(e))
	}

	writeJSON(w, http.StatusOK, listFeedsResponse{
		Feeds:                out,
		LastFeedMinutesAgo:   sum.LastEventMinutesAgo,
		LastFeedSummary:      sum.LastEventSummary,
		LastDiaperMinutesAgo: sum.LastDiaperMinutesAgo,
		LastDiaperSummary:    sum.LastDiaperSummary,
		TotalVolumeToday:     sum.TotalVolume,
		TotalFeedsToday:      sum.TotalCount,
		Unit:                 h.svc.Unit(),
	})
}

// createFeed godoc
// @Summary Registrar evento
// @Description Agrega un evento al final del registro y devuelve su ID posicional. Si no se envía timestamp se usa la hora actual. Si no se envía logged_by se toma el header X-Caregiver.
// @Tags feeds
// @Accept json
// @Produce json
// @Param X-Caregiver header string false "Nombre de quien registra"
// @Param payload body feedRequest true "Evento"
// @Success 201 {object} mutationResponse
// @Failure 400 {string} string "invalid json / type is required / unknown type / invalid timestamp"
// @Failure 500 {string} string "internal error"
// @Router /api/feeds [post]
func (h *handlers) createFeed(w http.ResponseWriter, r *http.Request) {
	e, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}

	id, err := h.svc.Create(r.Context(), e)
	if err != nil {
		h.internalError(w, "create feed", err)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Success: true, ID: id, Message: "Feed logged successfully"})
}

// updateFeed godoc
// @Summary Editar evento
// @Description Sobrescribe todos los campos del evento con el ID posicional indicado. Sin timestamp se conserva el original. El evento no se reubica aunque cambie de fecha.
// @Tags feeds
// @Accept json
// @Produce json
// @Param id path int true "ID posicional"
// @Param payload body feedRequest true "Evento"
// @Success 200 {object} mutationResponse
// @Failure 400 {string} string "invalid json / type is required / unknown type / invalid timestamp"
// @Failure 404 {string} string "feed not found"
// @Failure 500 {string} string "internal error"
// @Router /api/feeds/{id} [put]
func (h *handlers) updateFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(r)
	if !ok {
		http.Error(w, "feed not found", http.StatusNotFound)
		return
	}

	e, ok := h.decodeEvent(w, r)
	if !ok {
		return
	}

	found, err := h.svc.Update(r.Context(), id, e)
	if err != nil {
		h.internalError(w, "update feed", err)
		return
	}
	if !found {
		http.Error(w, "feed not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Message: "Feed updated"})
}

// deleteFeed godoc
// @Summary Borrar evento
// @Description Borra el evento; los IDs posteriores bajan en uno.
// @Tags feeds
// @Produce json
// @Param id path int true "ID posicional"
// @Success 200 {object} mutationResponse
// @Failure 404 {string} string "feed not found"
// @Failure 500 {string} string "internal error"
// @Router /api/feeds/{id} [delete]
func (h *handlers) deleteFeed(w http.ResponseWriter, r *http.Request) {
	id, ok := feedID(r)
	if !ok {
		http.Error(w, "feed not found", http.StatusNotFound)
		return
	}

	found, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.internalError(w, "delete feed", err)
		return
	}
	if !found {
		http.Error(w, "feed not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, mutationResponse{Success: true, Message: "Feed deleted"})
}

// vitaminStatus godoc
// @Summary Estado de la vitamina D
// @Description Indica si hoy ya se dio la dosis. Si ayer hubo actividad y ninguna dosis, registra la dosis faltante de ayer (23:59, notas "No", logged_by "Auto").
// @Tags vitamin
// @Produce json
// @Success 200 {object} vitaminStatusResponse
// @Failure 500 {string} string "internal error"
// @Router /api/vitamin-status [get]
func (h *handlers) vitaminStatus(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.VitaminStatus(r.Context())
	if err != nil {
		h.internalError(w, "vitamin status", err)
		return
	}

	resp := vitaminStatusResponse{
		GivenToday:       st.GivenToday,
		VitaminFeedID:    st.EventID,
		MissedDoseLogged: st.MissedDoseLogged,
	}
	if st.GivenAt != nil {
		s := st.GivenAt.Format(clockLayout)
		resp.TimeGiven = &s
	}

	writeJSON(w, http.StatusOK, resp)
}

// logVitamin godoc
// @Summary Registrar vitamina D
// @Description Registra la dosis de hoy con la hora actual. El body es opcional.
// @Tags vitamin
// @Accept json
// @Produce json
// @Param X-Caregiver header string false "Nombre de quien registra"
// @Param payload body logVitaminRequest false "Quién la dio"
// @Success 201 {object} mutationResponse
// @Failure 400 {string} string "invalid json"
// @Failure 500 {string} string "internal error"
// @Router /api/vitamin [post]
func (h *handlers) logVitamin(w http.ResponseWriter, r *http.Request) {
	var req logVitaminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	loggedBy := strings.TrimSpace(req.LoggedBy)
	if loggedBy == "" {
		loggedBy, _ = middleware.GetCaregiver(r.Context())
	}

	id, err := h.svc.LogVitamin(r.Context(), loggedBy)
	if err != nil {
		h.internalError(w, "log vitamin", err)
		return
	}

	writeJSON(w, http.StatusCreated, mutationResponse{Success: true, ID: id, Message: "Vitamin D logged"})
}

// stats godoc
// @Summary Estadísticas del día
// @Description Totales de hoy. Solo los biberones cuentan como tomas y volumen; el intervalo promedio usa todos los eventos salvo vitamina.
// @Tags feeds
// @Produce json
// @Success 200 {object} statsResponse
// @Failure 500 {string} string "internal error"
// @Router /api/stats [get]
func (h *handlers) stats(w http.ResponseWriter, r *http.Request) {
	today := h.svc.Now().Format(dateLayout)

	items, err := h.svc.Query(r.Context(), Filter{Date: today})
	if err != nil {
		h.internalError(w, "stats", err)
		return
	}

	st := DailyStats(items)
	writeJSON(w, http.StatusOK, statsResponse{Today: todayStats{
		TotalVolume:          st.TotalVolume,
		TotalFeeds:           st.TotalFeeds,
		TotalNursingSessions: st.NursingSessions,
		TotalPumpVolume:      st.PumpVolume,
		AvgFeedIntervalMin:   st.AvgFeedIntervalMinutes,
		TotalDiaperChanges:   st.DiaperChanges,
		Unit:                 h.svc.Unit(),
	}})
}

// decodeEvent valida el payload antes de llegar al store. Si falla ya
// escribió la respuesta 400.
func (h *handlers) decodeEvent(w http.ResponseWriter, r *http.Request) (Event, bool) {
	var req feedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return Event{}, false
	}

	kind := ParseKind(req.Type)
	if kind == "" {
		http.Error(w, "type is required", http.StatusBadRequest)
		return Event{}, false
	}
	if !kind.Known() {
		http.Error(w, "unknown type", http.StatusBadRequest)
		return Event{}, false
	}

	e := Event{
		Kind:      kind,
		Qualifier: ParseQualifier(req.Side),
		Amount:    h.amount(req),
		Duration:  firstOf(req.Duration, req.DurationMin),
		Notes:     req.Notes,
		LoggedBy:  strings.TrimSpace(req.LoggedBy),
	}
	if e.LoggedBy == "" {
		e.LoggedBy, _ = middleware.GetCaregiver(r.Context())
	}

	if ts := strings.TrimSpace(req.Timestamp); ts != "" {
		t, err := ParseTimestamp(ts, h.svc.Location())
		if err != nil {
			http.Error(w, "invalid timestamp", http.StatusBadRequest)
			return Event{}, false
		}
		e.OccurredAt = t
	}

	return e, true
}

// amount: "amount" va en la unidad del despliegue; amount_ml/amount_oz se
// convierten si hace falta.
func (h *handlers) amount(req feedRequest) *float64 {
	unit := h.svc.Unit()
	switch {
	case req.Amount != nil:
		return req.Amount
	case req.AmountML != nil:
		v := ConvertVolume(*req.AmountML, UnitML, unit)
		return &v
	case req.AmountOZ != nil:
		v := ConvertVolume(*req.AmountOZ, UnitOZ, unit)
		return &v
	}
	return nil
}

func (h *handlers) internalError(w http.ResponseWriter, op string, err error) {
	h.log.Error("store failure", map[string]any{"op": op, "error": err.Error()})
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func feedID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func firstOf(vs ...*float64) *float64 {
	for _, v := range vs {
		if v != nil {
			return v
		}
	}
	return nil
}

func toFeedResponse(e Event) feedResponse {
	return feedResponse{
		ID:          e.ID,
		Date:        e.Date(),
		Time:        e.Time(),
		Type:        Label(e.Kind, e.Qualifier),
		Kind:        e.Kind,
		Side:        string(e.Qualifier),
		Amount:      e.Amount,
		DurationMin: e.Duration,
		Notes:       e.Notes,
		LoggedBy:    e.LoggedBy,
		Timestamp:   FormatTimestamp(e.OccurredAt),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
