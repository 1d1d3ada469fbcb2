package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/WorkshopServices01/workshop-api/internal/config"
)

// WhatsAppSender posts to a provider HTTP API (Twilio-compatible payload
// shape). Like email, unconfigured means refuse-and-log.
type WhatsAppSender struct {
	apiURL string
	token  string
	from   string
	client *http.Client
}

func NewWhatsAppSender(cfg *config.Config) *WhatsAppSender {
	return &WhatsAppSender{
		apiURL: cfg.WhatsAppAPIURL,
		token:  cfg.WhatsAppToken,
		from:   cfg.WhatsAppFrom,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WhatsAppSender) Send(ctx context.Context, msg Message) error {
	if s.apiURL == "" {
		return fmt.Errorf("whatsapp api not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"from": s.from,
		"to":   msg.Recipient,
		"body": msg.Body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp api returned %d", resp.StatusCode)
	}
	return nil
}

var _ Notifier = (*WhatsAppSender)(nil)
