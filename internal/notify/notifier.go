package notify

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/parley-chat/parley/internal/logger"
)

// Notifier delivers fire-and-forget operational notifications. Failures are
// logged, never surfaced to clients.
type Notifier interface {
	Notify(subject, body string)
}

// RemoteNotifier posts notifications to a standalone email service.
type RemoteNotifier struct {
	baseURL string
	client  *http.Client
}

// NewRemoteNotifier creates a notifier that talks to the email service.
func NewRemoteNotifier(baseURL string) *RemoteNotifier {
	return &RemoteNotifier{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type sendRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Notify posts one notification. Errors are logged only.
func (n *RemoteNotifier) Notify(subject, body string) {
	payload, err := json.Marshal(sendRequest{Subject: subject, Body: body})
	if err != nil {
		logger.Warnf("notify: failed to encode request: %v", err)
		return
	}
	resp, err := n.client.Post(n.baseURL+"/api/email/send", "application/json", bytes.NewReader(payload))
	if err != nil {
		logger.Warnf("notify: send error: %v", err)
		return
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		logger.Warnf("notify: email service returned %d", resp.StatusCode)
	}
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(subject, body string) {}
