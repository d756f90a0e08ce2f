package sms

import (
	"context"
	"log"
)

// ConsoleProvider writes codes to the log instead of delivering them. Used in
// development when no SMS gateway is configured.
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider { return &ConsoleProvider{} }

func (p *ConsoleProvider) SendVerificationCode(ctx context.Context, phone, code string) error {
	log.Printf("[SMS] verification code for %s: %s", phone, code)
	return nil
}
