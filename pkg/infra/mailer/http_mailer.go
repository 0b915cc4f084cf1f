package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	appnotification "github.com/safenest/trustpipe/pkg/app/notification"
	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/notification"
	"github.com/safenest/trustpipe/pkg/infra/httpx"
)

// HTTPMailer posts guardian notifications to the platform's mail relay.
type HTTPMailer struct {
	client httpx.Client
	url    string
	apiKey string
}

func NewHTTPMailer(client httpx.Client, cfg config.NotificationsConfig) appnotification.Mailer {
	return &HTTPMailer{
		client: client,
		url:    cfg.MailerURL,
		apiKey: cfg.MailerAPIKey,
	}
}

type mailRequest struct {
	To       string               `json:"to"`
	Template string               `json:"template"`
	Data     notification.Payload `json:"data"`
}

func (m *HTTPMailer) Send(ctx context.Context, n *notification.TutorNotification) error {
	body, err := json.Marshal(mailRequest{
		To:       n.TutorEmail,
		Template: string(n.Type),
		Data:     n.Payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		detail, _, decErr := httpx.DecodeBody(resp.Header.Get("Content-Encoding"), raw)
		if decErr != nil {
			detail = raw
		}
		return fmt.Errorf("mail relay returned status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
