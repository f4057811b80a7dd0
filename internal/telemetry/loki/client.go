// Package loki pushes domain events to Grafana Loki.
package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultJob is the job label on every pushed stream.
const DefaultJob = "healthtrack"

// PushRequest is the Loki v1 push body.
type PushRequest struct {
	Streams []Stream `json:"streams"`
}

// Stream is one label set with its entries. Each value is [timestamp_ns, line].
type Stream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

var labelSanitize = regexp.MustCompile(`[^a-zA-Z0-9_\-:.]`)

// Client pushes log lines to a Loki instance.
type Client struct {
	baseURL string
	job     string
	http    *http.Client
}

// NewClient returns a client for baseURL (e.g. http://localhost:3100).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		job:     DefaultJob,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// eventFields are the parts of an event JSON used for labels and the timestamp.
// user_id is deliberately not a label: it would explode stream cardinality.
type eventFields struct {
	EventType string    `json:"eventType"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
}

// PushEventJSON pushes an event JSON (a Kafka message value) as one line, labelled by event type and source.
// Unparseable payloads are still pushed with the current time and only the job label.
func (c *Client) PushEventJSON(ctx context.Context, raw []byte) error {
	labels := map[string]string{}
	ts := time.Now().UTC()
	var f eventFields
	if err := json.Unmarshal(raw, &f); err == nil {
		if f.EventType != "" {
			labels["event_type"] = f.EventType
		}
		if f.Source != "" {
			labels["source"] = f.Source
		}
		if !f.CreatedAt.IsZero() {
			ts = f.CreatedAt
		}
	}
	return c.Push(ctx, ts, string(raw), labels)
}

// Push sends a single line. Non-2xx responses are errors.
func (c *Client) Push(ctx context.Context, ts time.Time, line string, labels map[string]string) error {
	if c.baseURL == "" {
		return fmt.Errorf("loki: base URL is empty")
	}
	stream := map[string]string{"job": c.job}
	for k, v := range labels {
		if s := labelSanitize.ReplaceAllString(strings.TrimSpace(v), "_"); s != "" {
			stream[k] = s
		}
	}
	payload, err := json.Marshal(PushRequest{Streams: []Stream{{
		Stream: stream,
		Values: [][]string{{strconv.FormatInt(ts.UnixNano(), 10), line}},
	}}})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/loki/api/v1/push", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("loki: push returned %s", resp.Status)
	}
	return nil
}
