package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider sends verification codes through a template-based SMS gateway.
type HTTPProvider struct {
	config *Config
	client *http.Client
}

func NewHTTPProvider(config *Config) *HTTPProvider {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &HTTPProvider{
		config: config,
		client: &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) SendVerificationCode(ctx context.Context, phone, code string) error {
	if err := p.config.Validate(); err != nil {
		return fmt.Errorf("sms provider is not configured: %w", err)
	}

	payload := map[string]interface{}{
		"mobile":     phone,
		"templateId": p.config.TemplateID,
		"parameters": []map[string]string{
			{"name": "Code", "value": code},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.APIURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", p.config.AccessKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to sms provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sms provider returned status %d: %s", resp.StatusCode, string(responseBody))
	}
	return nil
}
