package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"resume-builder/internal/config"
)

// Client calls the ai-service chat endpoint to draft description lines for
// experience entries.
type Client struct {
	BaseURL string
	Agent   string
	HTTP    *http.Client

	attempts int
	backoff  time.Duration
}

func NewClient(cfg config.AIConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	agent := cfg.Agent
	if agent == "" {
		agent = "auto"
	}
	return &Client{
		BaseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		Agent:    agent,
		HTTP:     &http.Client{Timeout: timeout},
		attempts: 3,
		backoff:  time.Second,
	}
}

// doPostWithRetry performs an HTTP POST to the given path with retry/backoff.
func (c *Client) doPostWithRetry(ctx context.Context, path string, body []byte) (*http.Response, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTP.Do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		// exponential backoff before retrying
		if i < c.attempts-1 {
			select {
			case <-time.After(time.Duration(1<<i) * c.backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

type chatRequest struct {
	Agent string `json:"agent"`
	Input string `json:"input"`
}

type chatResponse struct {
	Agent  string `json:"agent"`
	Output string `json:"output"`
}

func (c *Client) chat(ctx context.Context, input string) (string, error) {
	b, err := json.Marshal(chatRequest{Agent: c.Agent, Input: input})
	if err != nil {
		return "", err
	}
	resp, err := c.doPostWithRetry(ctx, "/v1/chat", b)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	rb, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	slog.Debug("ai-service response", "status", resp.StatusCode, "bytes", len(rb))
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai-service returned non-200 status: %d", resp.StatusCode)
	}

	var out chatResponse
	if err := json.Unmarshal(rb, &out); err != nil {
		return "", fmt.Errorf("decode ai-service response: %w", err)
	}
	return out.Output, nil
}

const bulletsInstructions = `Write 3 to 5 resume bullet points for the role below.
Each bullet starts with a strong verb, states a measurable outcome where plausible, and stays under 160 characters.
Return ONLY a JSON array of strings. No commentary, no markdown, no code fences.`

// SuggestBullets asks the ai-service for description lines matching a role
// at a company.
func (c *Client) SuggestBullets(ctx context.Context, role, company string) ([]string, error) {
	input := fmt.Sprintf("%s\n\nROLE: %s\nCOMPANY: %s", bulletsInstructions, strings.TrimSpace(role), strings.TrimSpace(company))
	output, err := c.chat(ctx, input)
	if err != nil {
		return nil, err
	}
	return parseBullets(output)
}

var errNoBullets = errors.New("ai-service returned no bullet points")

// parseBullets accepts a JSON array, a JSON array wrapped in prose or code
// fences, or plain lines prefixed with list markers.
func parseBullets(output string) ([]string, error) {
	var out []string
	if err := json.Unmarshal([]byte(output), &out); err != nil {
		start := strings.Index(output, "[")
		end := strings.LastIndex(output, "]")
		if start < 0 || end <= start || json.Unmarshal([]byte(output[start:end+1]), &out) != nil {
			out = nil
			for _, line := range strings.Split(output, "\n") {
				line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•"))
				if line != "" && !strings.HasPrefix(line, "```") {
					out = append(out, line)
				}
			}
		}
	}

	clean := make([]string, 0, len(out))
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	if len(clean) == 0 {
		return nil, errNoBullets
	}
	return clean, nil
}
