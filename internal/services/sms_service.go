package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers a text message to an MSISDN.
type SMSSender interface {
	Send(ctx context.Context, msisdn, text string) error
}

// SMSGateway posts messages to an HTTP SMS provider as a form with msisdn and
// text fields.
type SMSGateway struct {
	providerURL string
	client      *http.Client
}

// NewSMSGateway creates a new SMSGateway.
func NewSMSGateway(providerURL string, timeout time.Duration) *SMSGateway {
	return &SMSGateway{
		providerURL: providerURL,
		client:      &http.Client{Timeout: timeout},
	}
}

// Send posts one message to the provider.
func (s *SMSGateway) Send(ctx context.Context, msisdn, text string) error {
	if s.providerURL == "" {
		log.Println("[SMS] Provider URL not configured")
		return nil
	}

	form := url.Values{}
	form.Set("msisdn", msisdn)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.providerURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sms request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}
	return nil
}

// dispatchSMS hands the message to sender without waiting for the result.
func dispatchSMS(sender SMSSender, msisdn, text string) {
	go func() {
		if err := sender.Send(context.Background(), msisdn, text); err != nil {
			log.Printf("[SMS] Failed to send message to %s: %v", msisdn, err)
		}
	}()
}
