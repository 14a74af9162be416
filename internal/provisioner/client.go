// Package provisioner wraps the identity provider's admin API. The only
// operation the service needs is ensuring an account exists for an email.
package provisioner

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
	log     *slog.Logger
}

type Config struct {
	BaseURL string
	APIKey  string
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		hc:      &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		log:     logger.With(sl.Module("provisioner")),
	}
}

type createUserRequest struct {
	Email        string `json:"email"`
	EmailConfirm bool   `json:"email_confirm"`
}

// Ensure creates an account for the email in the identity backend. The call
// is idempotent from the caller's point of view: an account that already
// exists comes back as entity.ErrAccountExists, which callers count as
// success.
func (c *Client) Ensure(ctx context.Context, email string) error {
	log := c.log.With(slog.String("email", email))

	status := "ERROR"
	t1 := time.Now()
	defer func() {
		log.Debug("provisioning request completed",
			slog.String("duration", fmt.Sprintf("%.3fms", float64(time.Since(t1))/float64(time.Millisecond))),
			slog.String("status", status))
	}()

	data, err := json.Marshal(createUserRequest{Email: email, EmailConfirm: true})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/admin/users", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("provisioner request: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	status = resp.Status
	if resp.StatusCode >= 300 {
		return c.parseErr(resp.StatusCode, body)
	}
	return nil
}

type apiErrorRaw struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
	Error   string `json:"error"`
}

// parseErr distills the identity API error body. Duplicate-account answers
// map to entity.ErrAccountExists; anything else keeps the upstream message.
func (c *Client) parseErr(statusCode int, body []byte) error {
	var raw apiErrorRaw
	message := string(body)
	if err := json.Unmarshal(body, &raw); err == nil {
		if raw.Message != "" {
			message = raw.Message
		} else if raw.Error != "" {
			message = raw.Error
		}
	}
	if statusCode == http.StatusConflict || strings.Contains(strings.ToLower(message), "already") {
		return entity.ErrAccountExists
	}
	return fmt.Errorf("provisioner status %d: %s", statusCode, message)
}
