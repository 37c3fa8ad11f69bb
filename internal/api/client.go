package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mclang/kiho-wt-puncher/internal/config"
	"github.com/mclang/kiho-wt-puncher/internal/logger"
	"github.com/mclang/kiho-wt-puncher/internal/punch"
)

// Client wraps the two endpoints of the Kiho v3 worktime punch API:
// punch submission (POST) and punch history (GET). It is the only component
// in the program that performs network I/O.
//
// A single request is issued per call and its outcome is final — no retries.
// The configured timeout applies to the whole request including body read.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	costCentre int
	httpClient *http.Client
}

// New builds a Client from the loaded configuration.
// The userAgent identifies this tool to the API (required by the Kiho service).
func New(cfg *config.Config, userAgent string) *Client {
	return &Client{
		baseURL:    cfg.APIURL,
		apiKey:     cfg.APIKey,
		userAgent:  userAgent,
		costCentre: cfg.DefaultCostCentre,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// newPunch is the JSON payload the punch endpoint expects, wrapped in a
// {"newPunch": ...} envelope. LOGIN punches carry a description and a customer
// cost centre reference; LOGOUT punches carry neither.
type newPunch struct {
	Type               string         `json:"type"`
	Description        string         `json:"description,omitempty"`
	CustomerCostcentre *costCentreRef `json:"customerCostcentre,omitempty"`
	Timestamp          string         `json:"timestamp"`
	RealTimestamp      string         `json:"realTimestamp"`
}

type costCentreRef struct {
	ID int `json:"id"`
}

// punchLine is the wire shape of a single punch record in API responses.
// Only the fields this tool consumes are declared; the API returns many more.
type punchLine struct {
	ID                 int64  `json:"id"`
	Type               string `json:"type"`
	Timestamp          string `json:"timestamp"`
	Description        string `json:"description"`
	CustomerCostcentre *struct {
		Name string `json:"name"`
	} `json:"customerCostcentre"`
}

// PunchBody builds the JSON body that SubmitPunch would POST for the given
// kind and description. Exposed so dry runs can show the exact payload
// without touching the network.
func (c *Client) PunchBody(kind punch.Kind, description string) ([]byte, error) {
	stamp := time.Now().Format(time.RFC3339)
	body := newPunch{
		Type:          string(kind),
		Timestamp:     stamp,
		RealTimestamp: stamp,
	}
	if kind == punch.Login {
		body.Description = description
		if c.costCentre != 0 {
			body.CustomerCostcentre = &costCentreRef{ID: c.costCentre}
		}
	}
	return json.MarshalIndent(map[string]newPunch{"newPunch": body}, "", "  ")
}

// SubmitPunch POSTs a new LOGIN or LOGOUT punch and returns the record the
// server created for it. The description is only sent for LOGIN punches.
func (c *Client) SubmitPunch(kind punch.Kind, description string) (*punch.Record, error) {
	payload, err := c.PunchBody(kind, description)
	if err != nil {
		return nil, errorf(InvalidArgument, 0, "building punch body: %v", err)
	}
	logger.Debug("[DEBUG] Punch POST body:\n%s\n", payload)

	req, err := http.NewRequest(http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, errorf(InvalidArgument, 0, "building punch request: %v", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	// POST responses wrap the created punch line in {"result": {...}}.
	var resp struct {
		Result punchLine `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errorf(Protocol, status, "parsing punch response: %v", err)
	}
	rec, err := resp.Result.toRecord()
	if err != nil {
		return nil, errorf(Protocol, status, "parsing punch response: %v", err)
	}
	return rec, nil
}

// FetchLatest GETs the latest count punch lines, newest first, optionally
// restricted to a single punch kind. A non-positive count is rejected locally
// without any network call since the result could never be useful.
//
// The server determines the ordering; `orderBy=timestamp DESC` pins the
// newest-first assumption into the request itself and the client never
// re-sorts what it gets back.
func (c *Client) FetchLatest(count int, kind *punch.Kind) ([]punch.Record, error) {
	if count <= 0 {
		return nil, errorf(InvalidArgument, 0, "punch count must be positive, got %d", count)
	}

	params := url.Values{}
	params.Set("orderBy", "timestamp DESC")
	params.Set("pageSize", strconv.Itoa(count))
	if kind != nil {
		params.Set("type", string(*kind))
	}
	logger.Debug("[DEBUG] Punch GET query: %s\n", params.Encode())

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errorf(InvalidArgument, 0, "building history request: %v", err)
	}
	// NOTE: The history endpoint rejects GET requests carrying a Content-Type
	// header, so only the common headers are set here.
	c.setHeaders(req)

	body, status, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Result []punchLine `json:"result"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errorf(Protocol, status, "parsing history response: %v", err)
	}
	records := make([]punch.Record, 0, len(resp.Result))
	for _, line := range resp.Result {
		rec, err := line.toRecord()
		if err != nil {
			return nil, errorf(Protocol, status, "parsing history response: %v", err)
		}
		records = append(records, *rec)
	}
	return records, nil
}

// setHeaders applies the headers common to both endpoints.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
}

// do sends the request and classifies the outcome:
// transport failure or timeout -> Unavailable, 4xx -> Rejected, 5xx -> Unavailable.
// On 2xx it returns the response body for the caller to parse.
func (c *Client) do(req *http.Request) ([]byte, int, error) {
	logger.Verbose("%s :: %s %s\n", time.Now().Format(punch.StampFormat), req.Method, req.URL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errorf(Unavailable, 0, "%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()
	logger.Verbose("%s :: HTTP response: %s\n", time.Now().Format(punch.StampFormat), resp.Status)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errorf(Unavailable, resp.StatusCode, "reading response body: %v", err)
	}
	logger.Debug("[DEBUG] Response body:\n%s\n", body)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, resp.StatusCode, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, resp.StatusCode, errorf(Rejected, resp.StatusCode, "server rejected the request: %s", snippet(body))
	default:
		return nil, resp.StatusCode, errorf(Unavailable, resp.StatusCode, "server error: %s", snippet(body))
	}
}

// snippet shortens an error body so log lines stay readable.
func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

// toRecord converts a wire punch line into the domain record,
// validating the fields the rest of the program relies on.
func (l punchLine) toRecord() (*punch.Record, error) {
	stamp, err := time.Parse(time.RFC3339, l.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("punch %d has bad timestamp %q: %w", l.ID, l.Timestamp, err)
	}
	if l.Type == "" {
		return nil, fmt.Errorf("punch %d has no type", l.ID)
	}
	rec := &punch.Record{
		ID:          l.ID,
		Kind:        punch.Kind(l.Type),
		Timestamp:   stamp,
		Description: l.Description,
	}
	if l.CustomerCostcentre != nil {
		rec.CostCentre = l.CustomerCostcentre.Name
	}
	return rec, nil
}
