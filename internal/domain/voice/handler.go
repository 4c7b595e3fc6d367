package voice

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"baby-feed-tracker/internal/domain/feeds"
	"baby-feed-tracker/internal/middleware"
	"baby-feed-tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// Recorder es lo que el handler necesita del store.
type Recorder interface {
	Create(ctx context.Context, e feeds.Event) (int, error)
	Unit() feeds.VolumeUnit
}

func RegisterRoutes(r chi.Router, rec Recorder, log logger.Logger) {
	if log == nil {
		log = logger.NewNop()
	}
	r.Post("/voice", parseVoiceHandler(rec, log.With(map[string]any{"component": "voice.http"})))
}

type voiceRequest struct {
	Transcript string `json:"transcript"`
	LoggedBy   string `json:"logged_by"`
	Log        bool   `json:"log"` // true = registrar si se entendió
}

type candidateResponse struct {
	Type        feeds.Kind       `json:"type"`
	Side        feeds.Qualifier  `json:"side,omitempty"`
	Amount      *float64         `json:"amount"`
	Unit        feeds.VolumeUnit `json:"unit"`
	DurationMin *float64         `json:"duration_min"`
}

type voiceResponse struct {
	Parsed      bool               `json:"parsed"`
	Description string             `json:"description"`
	Candidate   *candidateResponse `json:"candidate,omitempty"`
	ID          int                `json:"id,omitempty"`
}

// parseVoiceHandler godoc
// @Summary Interpretar frase dictada
// @Description Convierte una frase ("bottle 3 ounces", "nursed left 15 minutes") en un evento candidato. Con log=true y si se entendió, lo registra. Si no se reconoce ningún tipo devuelve 422 y no toca el registro.
// @Tags voice
// @Accept json
// @Produce json
// @Param X-Caregiver header string false "Nombre de quien registra"
// @Param payload body voiceRequest true "Frase"
// @Success 200 {object} voiceResponse
// @Success 201 {object} voiceResponse
// @Failure 400 {string} string "invalid json / transcript is required"
// @Failure 422 {object} voiceResponse
// @Failure 500 {string} string "internal error"
// @Router /api/voice [post]
func parseVoiceHandler(rec Recorder, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req voiceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.Transcript) == "" {
			http.Error(w, "transcript is required", http.StatusBadRequest)
			return
		}

		c, ok := Parse(req.Transcript)
		if !ok {
			log.Debug("transcript not understood", map[string]any{"transcript": req.Transcript})
			writeJSON(w, http.StatusUnprocessableEntity, voiceResponse{Description: Describe(c, false)})
			return
		}

		unit := rec.Unit()
		e := c.Event(unit)
		resp := voiceResponse{
			Parsed:      true,
			Description: Describe(c, true),
			Candidate: &candidateResponse{
				Type:        e.Kind,
				Side:        e.Qualifier,
				Amount:      e.Amount,
				Unit:        unit,
				DurationMin: e.Duration,
			},
		}

		if !req.Log {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		e.Notes = req.Transcript
		e.LoggedBy = strings.TrimSpace(req.LoggedBy)
		if e.LoggedBy == "" {
			e.LoggedBy, _ = middleware.GetCaregiver(r.Context())
		}

		id, err := rec.Create(r.Context(), e)
		if err != nil {
			log.Error("store failure", map[string]any{"op": "voice log", "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		resp.ID = id

		writeJSON(w, http.StatusCreated, resp)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
