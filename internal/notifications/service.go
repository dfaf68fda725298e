package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mixdown/internal/config"
)

const userAgent = "Mixdown-Go/0.1.0"

// Service defines the notification surface exposed to the mix pipeline.
type Service interface {
	NotifyMixCompleted(ctx context.Context, voiceRef, outputRef string, duckingApplied bool) error
	NotifyMixFailed(ctx context.Context, voiceRef string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyMixCompleted(ctx context.Context, voiceRef, outputRef string, duckingApplied bool) error {
	voiceRef = strings.TrimSpace(voiceRef)
	outputRef = strings.TrimSpace(outputRef)

	message := fmt.Sprintf("Mix complete: %s", voiceRef)
	if outputRef != "" {
		message = fmt.Sprintf("%s\nOutput: %s", message, outputRef)
	}
	if !duckingApplied {
		message += "\nPublished voice-only (no ducking)"
	}

	data := payload{
		title:   "Mixdown - Complete",
		message: message,
		tags:    []string{"mixdown", "mix", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyMixFailed(ctx context.Context, voiceRef string, err error) error {
	var builder strings.Builder
	builder.WriteString("Mix failed")
	if voiceRef = strings.TrimSpace(voiceRef); voiceRef != "" {
		builder.WriteString(" for ")
		builder.WriteString(voiceRef)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Mixdown - Error",
		message:  builder.String(),
		tags:     []string{"mixdown", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Mixdown - Test",
		message:  "Notification system test",
		tags:     []string{"mixdown", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyMixCompleted(context.Context, string, string, bool) error { return nil }
func (noopService) NotifyMixFailed(context.Context, string, error) error           { return nil }
func (noopService) TestNotification(context.Context) error                         { return nil }
