package voice

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"baby-feed-tracker/internal/domain/feeds"
	"baby-feed-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	unit    feeds.VolumeUnit
	err     error
	created []feeds.Event
}

func (f *fakeRecorder) Create(ctx context.Context, e feeds.Event) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.created = append(f.created, e)
	return len(f.created), nil
}

func (f *fakeRecorder) Unit() feeds.VolumeUnit { return f.unit }

func newVoiceRouter(rec Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Caregiver)
	r.Route("/api", func(api chi.Router) {
		RegisterRoutes(api, rec, nil)
	})
	return r
}

func postVoice(t *testing.T, h http.Handler, body string, caregiver string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/voice", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caregiver != "" {
		req.Header.Set(middleware.CaregiverHeader, caregiver)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestVoiceHandler_PreviewDoesNotLog(t *testing.T) {
	rec := &fakeRecorder{unit: feeds.UnitML}
	rr := postVoice(t, newVoiceRouter(rec), `{"transcript":"bottle 3 ounces"}`, "")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, rec.created)

	var resp voiceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Parsed)
	assert.Equal(t, "Type: bottle | Amount: 3 oz", resp.Description)
	require.NotNil(t, resp.Candidate)
	assert.Equal(t, feeds.UnitML, resp.Candidate.Unit)
	assert.Equal(t, 88.7, *resp.Candidate.Amount)
}

func TestVoiceHandler_LogCreatesEvent(t *testing.T) {
	rec := &fakeRecorder{unit: feeds.UnitOZ}
	rr := postVoice(t, newVoiceRouter(rec), `{"transcript":"nursed left 12 minutes","log":true}`, "Mom")

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	require.Len(t, rec.created, 1)

	e := rec.created[0]
	assert.Equal(t, feeds.KindNurse, e.Kind)
	assert.Equal(t, feeds.QualifierLeft, e.Qualifier)
	assert.Equal(t, 12.0, *e.Duration)
	assert.Equal(t, "Mom", e.LoggedBy, "falls back to X-Caregiver")
	assert.Equal(t, "nursed left 12 minutes", e.Notes)

	var resp voiceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.ID)
}

func TestVoiceHandler_Unparsable_NeverTouchesStore(t *testing.T) {
	rec := &fakeRecorder{unit: feeds.UnitML}
	rr := postVoice(t, newVoiceRouter(rec), `{"transcript":"3 ounces","log":true}`, "")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Empty(t, rec.created)
	assert.Contains(t, rr.Body.String(), "Could not parse input")
}

func TestVoiceHandler_BadRequests(t *testing.T) {
	h := newVoiceRouter(&fakeRecorder{unit: feeds.UnitML})

	assert.Equal(t, http.StatusBadRequest, postVoice(t, h, `{`, "").Code)
	assert.Equal(t, http.StatusBadRequest, postVoice(t, h, `{"transcript":"  "}`, "").Code)
}

func TestVoiceHandler_StoreFailure(t *testing.T) {
	rec := &fakeRecorder{unit: feeds.UnitML, err: errors.New("disk full")}
	rr := postVoice(t, newVoiceRouter(rec), `{"transcript":"diaper poop","log":true}`, "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
