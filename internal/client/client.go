// Package client is the typed HTTP client for the portal API, used by
// the monitor. Every GET goes through the fetch cache keyed by path
// plus encoded query, mirroring how the dashboard reads the API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shuletrack/internal/cache"
	"shuletrack/internal/domain/dashboard"
	"shuletrack/internal/domain/school"
	"shuletrack/internal/domain/student"
	"shuletrack/internal/services/data"
)

// Client calls the ShuleTrack API.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *cache.Cache
	statsTTL time.Duration
	listTTL  time.Duration
}

// New creates a client. c may be nil to disable caching (every call
// then hits the network).
func New(baseURL string, c *cache.Cache, statsTTL, listTTL time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: 15 * time.Second},
		cache:    c,
		statsTTL: statsTTL,
		listTTL:  listTTL,
	}
}

// SchoolsPage is the decoded /api/schools response.
type SchoolsPage struct {
	Success    bool            `json:"success"`
	Data       []school.School `json:"data"`
	Pagination data.Pagination `json:"pagination"`
}

// StudentsPage is the decoded /api/students response.
type StudentsPage struct {
	Success    bool              `json:"success"`
	Data       []student.Student `json:"data"`
	Pagination data.Pagination   `json:"pagination"`
}

type statsEnvelope struct {
	Success bool             `json:"success"`
	Data    *dashboard.Stats `json:"data"`
}

type kpisEnvelope struct {
	Success bool            `json:"success"`
	Data    *dashboard.KPIs `json:"data"`
}

// HealthStatus is the decoded /health response.
type HealthStatus struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	Uptime      int64  `json:"uptime"`
	Environment string `json:"environment"`
}

// Schools fetches one page of schools.
func (c *Client) Schools(ctx context.Context, f school.Filter, page, limit int) (*SchoolsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if f.DistrictID > 0 {
		q.Set("district_id", strconv.FormatInt(f.DistrictID, 10))
	}
	if f.BlockID > 0 {
		q.Set("block_id", strconv.FormatInt(f.BlockID, 10))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var out SchoolsPage
	if err := c.getJSON(ctx, "/api/schools?"+q.Encode(), c.listTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Students fetches one page of students.
func (c *Client) Students(ctx context.Context, f student.Filter, page, limit int) (*StudentsPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if f.SchoolID > 0 {
		q.Set("school_id", strconv.FormatInt(f.SchoolID, 10))
	}
	if f.ClassNumber > 0 {
		q.Set("class_number", strconv.Itoa(f.ClassNumber))
	}
	if f.Section != "" {
		q.Set("section", f.Section)
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	var out StudentsPage
	if err := c.getJSON(ctx, "/api/students?"+q.Encode(), c.listTTL, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches the dashboard stats through the short-TTL cache.
func (c *Client) Stats(ctx context.Context) (*dashboard.Stats, error) {
	var env statsEnvelope
	if err := c.getJSON(ctx, "/api/dashboard/stats", c.statsTTL, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// KPIs fetches the KPI metrics through the short-TTL cache.
func (c *Client) KPIs(ctx context.Context) (*dashboard.KPIs, error) {
	var env kpisEnvelope
	if err := c.getJSON(ctx, "/api/dashboard/kpis", c.statsTTL, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Health probes the health endpoint, bypassing the cache.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	raw, err := c.get(ctx, "/health")
	if err != nil {
		return nil, err
	}
	var hs HealthStatus
	if err := json.Unmarshal(raw, &hs); err != nil {
		return nil, err
	}
	return &hs, nil
}

// getJSON fetches (or serves cached) raw bytes for the path and decodes
// them. Raw bytes are what gets cached, so every caller decodes its own
// copy.
func (c *Client) getJSON(ctx context.Context, path string, ttl time.Duration, out any) error {
	if c.cache == nil {
		raw, err := c.get(ctx, path)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, out)
	}
	v, err := c.cache.Fetch(ctx, path, ttl, func(ctx context.Context) (any, error) {
		return c.get(ctx, path)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(v.([]byte), out)
}

type apiError struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("GET %s: read body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		var ae apiError
		if json.Unmarshal(body, &ae) == nil && ae.Error != "" {
			return nil, fmt.Errorf("GET %s: %s (status %d)", path, ae.Error, resp.StatusCode)
		}
		return nil, fmt.Errorf("GET %s: status %d", path, resp.StatusCode)
	}
	return body, nil
}
