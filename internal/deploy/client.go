// Package deploy wraps the deployment service API. The dashboard uses it
// for a single action: rebuilding the site after a mode change, plus a
// status read to show how the last build went.
package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"launchlist/entity"
	"launchlist/lib/sl"
)

type Client struct {
	hc      *http.Client
	baseURL string
	apiKey  string
	siteID  string
	log     *slog.Logger
}

type Config struct {
	BaseURL string
	APIKey  string
	SiteID  string
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		siteID:  cfg.SiteID,
		log:     logger.With(sl.Module("deploy")),
	}
}

type deployRaw struct {
	Id        string    `json:"id"`
	State     string    `json:"state"`
	Branch    string    `json:"branch"`
	CreatedAt time.Time `json:"created_at"`
}

// Trigger starts a new build of the site and returns the created deploy.
func (c *Client) Trigger(ctx context.Context) (*entity.Deployment, error) {
	path := fmt.Sprintf("/api/v1/sites/%s/builds", c.siteID)
	body, err := c.request(ctx, http.MethodPost, path, map[string]string{})
	if err != nil {
		return nil, err
	}
	var raw deployRaw
	if err = json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode deploy: %w", err)
	}
	return toDeployment(&raw), nil
}

// Status returns the most recent deploy of the site.
func (c *Client) Status(ctx context.Context) (*entity.Deployment, error) {
	path := fmt.Sprintf("/api/v1/sites/%s/deploys?per_page=1", c.siteID)
	body, err := c.request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var raws []deployRaw
	if err = json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("decode deploys: %w", err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("no deploys found")
	}
	return toDeployment(&raws[0]), nil
}

func toDeployment(raw *deployRaw) *entity.Deployment {
	return &entity.Deployment{
		Id:        raw.Id,
		State:     raw.State,
		Branch:    raw.Branch,
		CreatedAt: raw.CreatedAt,
	}
}

func (c *Client) request(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	log := c.log.With(
		slog.String("method", method),
		slog.String("path", path),
	)

	status := "ERROR"
	t1 := time.Now()
	defer func() {
		log.Debug("deploy API request completed",
			slog.String("duration", fmt.Sprintf("%.3fms", float64(time.Since(t1))/float64(time.Millisecond))),
			slog.String("status", status))
	}()

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deploy API request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	status = resp.Status
	if resp.StatusCode >= 300 {
		log.Error("deploy API returned error",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return nil, fmt.Errorf("deploy API %s: %s", resp.Status, body)
	}
	return body, nil
}
