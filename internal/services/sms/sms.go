package sms

import (
	"context"
	"fmt"
	"time"
)

// Provider delivers verification codes to phone numbers.
type Provider interface {
	SendVerificationCode(ctx context.Context, phone, code string) error
}

type Config struct {
	AccessKey  string
	TemplateID int
	APIURL     string
	Timeout    time.Duration
}

func (c *Config) Validate() error {
	if c.AccessKey == "" {
		return fmt.Errorf("SMS_ACCESS_KEY is required")
	}
	if c.APIURL == "" {
		return fmt.Errorf("SMS_API_URL is required")
	}
	if c.TemplateID == 0 {
		return fmt.Errorf("SMS_TEMPLATE_ID is required")
	}
	return nil
}
