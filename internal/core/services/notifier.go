package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/savr_backend/internal/core/ports/services"
	"github.com/SscSPs/savr_backend/internal/middleware"
)

const notifyTimeout = 10 * time.Second

// expoPushMessage is the wire format of the Expo push API.
type expoPushMessage struct {
	To    string         `json:"to"`
	Sound string         `json:"sound"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

type expoPushNotifier struct {
	url        string
	httpClient *http.Client
}

// NewExpoPushNotifier creates a push notifier backed by the Expo push API.
func NewExpoPushNotifier(url string) portssvc.PushNotifierSvc {
	return &expoPushNotifier{
		url:        url,
		httpClient: &http.Client{Timeout: notifyTimeout},
	}
}

var _ portssvc.PushNotifierSvc = (*expoPushNotifier)(nil)

// Notify delivers a single push message. Delivery is best effort: every
// failure is logged and swallowed.
func (n *expoPushNotifier) Notify(ctx context.Context, pushToken, title, body string, data map[string]any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	payload, err := json.Marshal(expoPushMessage{
		To:    pushToken,
		Sound: "default",
		Title: title,
		Body:  body,
		Data:  data,
	})
	if err != nil {
		logger.Error("Failed to encode push message", slog.String("error", err.Error()))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		logger.Error("Failed to build push request", slog.String("error", err.Error()))
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		logger.Warn("Push notification send failed", slog.String("error", err.Error()))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Warn("Push notification rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("response", string(respBody)),
		)
		return
	}

	logger.Info("Push notification sent", slog.String("title", title))
}

// noopNotifier discards all notifications. Used when no push provider is
// configured.
type noopNotifier struct{}

// NewNoopNotifier creates a notifier that does nothing.
func NewNoopNotifier() portssvc.PushNotifierSvc {
	return noopNotifier{}
}

func (noopNotifier) Notify(ctx context.Context, pushToken, title, body string, data map[string]any) {
}
