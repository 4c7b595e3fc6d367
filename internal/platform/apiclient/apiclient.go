package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	caregiverHeader = "X-Caregiver"
)

// Client habla con un servidor en marcha. Lo usan los subcomandos del CLI.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	// Caregiver viaja en X-Caregiver en cada request si no está vacío.
	Caregiver string
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// FeedInput es el payload de POST /api/feeds.
type FeedInput struct {
	Type      string   `json:"type"`
	Side      string   `json:"side,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Duration  *float64 `json:"duration,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	LoggedBy  string   `json:"logged_by,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

type Created struct {
	Success bool   `json:"success"`
	ID      int    `json:"id"`
	Message string `json:"message"`
}

type VitaminStatus struct {
	GivenToday       bool    `json:"given_today"`
	VitaminFeedID    *int    `json:"vitamin_feed_id"`
	TimeGiven        *string `json:"time_given"`
	MissedDoseLogged bool    `json:"missed_dose_logged"`
}

type Stats struct {
	TotalVolume          float64 `json:"total_volume"`
	TotalFeeds           int     `json:"total_feeds"`
	TotalNursingSessions int     `json:"total_nursing_sessions"`
	TotalPumpVolume      float64 `json:"total_pump_volume"`
	AvgFeedIntervalMin   *int    `json:"avg_feed_interval_min"`
	TotalDiaperChanges   int     `json:"total_diaper_changes"`
	Unit                 string  `json:"unit"`
}

type VoiceResult struct {
	Parsed      bool   `json:"parsed"`
	Description string `json:"description"`
	ID          int    `json:"id"`
}

func (c *Client) CreateFeed(ctx context.Context, in FeedInput) (Created, error) {
	var out Created
	err := c.DoJSON(ctx, http.MethodPost, "/api/feeds", in, &out)
	return out, err
}

func (c *Client) LogVitamin(ctx context.Context, loggedBy string) (Created, error) {
	var out Created
	err := c.DoJSON(ctx, http.MethodPost, "/api/vitamin", map[string]string{"logged_by": loggedBy}, &out)
	return out, err
}

func (c *Client) VitaminStatus(ctx context.Context) (VitaminStatus, error) {
	var out VitaminStatus
	err := c.DoJSON(ctx, http.MethodGet, "/api/vitamin-status", nil, &out)
	return out, err
}

func (c *Client) TodayStats(ctx context.Context) (Stats, error) {
	var out struct {
		Today Stats `json:"today"`
	}
	err := c.DoJSON(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out.Today, err
}

// Voice manda la frase al parser del servidor; con log=true la registra.
// Una frase que no se entiende vuelve como *HTTPError 422.
func (c *Client) Voice(ctx context.Context, transcript string, log bool) (VoiceResult, error) {
	in := map[string]any{"transcript": transcript, "log": log}
	var out VoiceResult
	err := c.DoJSON(ctx, http.MethodPost, "/api/voice", in, &out)
	return out, err
}

// DoJSON hace un request JSON contra BaseURL+path.
// in nil => sin body; out nil => ignora la respuesta. Error si status no es 2xx.
func (c *Client) DoJSON(ctx context.Context, method, path string, in, out any) error {
	if c == nil || c.HTTP == nil {
		return errors.New("apiclient: nil client")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: marshal json: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Caregiver != "" {
		req.Header.Set(caregiverHeader, c.Caregiver)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1MB max

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: unmarshal json: %w", err)
	}
	return nil
}
