package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New("not a url", time.Second)
	assert.Error(t, err)

	c, err := New("http://localhost:8080/", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)
}

func TestClient_CreateFeed(t *testing.T) {
	var got map[string]any
	var caregiver string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/feeds", r.URL.Path)
		caregiver = r.Header.Get("X-Caregiver")
		_ = json.NewDecoder(r.Body).Decode(&got)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"id":4,"message":"Feed logged successfully"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)
	c.Caregiver = "Dad"

	amount := 90.0
	out, err := c.CreateFeed(context.Background(), FeedInput{Type: "bottle", Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, 4, out.ID)
	assert.Equal(t, "Dad", caregiver)
	assert.Equal(t, "bottle", got["type"])
	assert.Equal(t, 90.0, got["amount"])
	assert.NotContains(t, got, "side")
}

func TestClient_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"parsed":false}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)

	_, err = c.Voice(context.Background(), "hello", true)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusUnprocessableEntity, herr.StatusCode)
	assert.Equal(t, `{"parsed":false}`, herr.Body)
}

func TestClient_VitaminStatusAndStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/vitamin-status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"given_today":true,"vitamin_feed_id":2,"time_given":"08:15 AM","missed_dose_logged":false}`))
	})
	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"today":{"total_volume":180,"total_feeds":2,"avg_feed_interval_min":null,"unit":"ml"}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := New(srv.URL, time.Second)
	require.NoError(t, err)

	st, err := c.VitaminStatus(context.Background())
	require.NoError(t, err)
	assert.True(t, st.GivenToday)
	assert.Equal(t, "08:15 AM", *st.TimeGiven)

	stats, err := c.TodayStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 180.0, stats.TotalVolume)
	assert.Nil(t, stats.AvgFeedIntervalMin)
	assert.Equal(t, "ml", stats.Unit)
}
