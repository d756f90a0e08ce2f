package conversation

import (
	"fmt"
	"time"
)

const (
	// PageSize is the number of messages per history page.
	PageSize = 20

	defaultMinReplyDelay = 1500 * time.Millisecond
	defaultMaxReplyDelay = 3500 * time.Millisecond
)

// Config tunes the conversation manager. Tests shrink the reply delay window
// to keep the deferred half of a send cycle fast.
type Config struct {
	PageSize int
	// Reply delay is uniform in [MinReplyDelay, MaxReplyDelay).
	MinReplyDelay time.Duration
	MaxReplyDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		PageSize:      PageSize,
		MinReplyDelay: defaultMinReplyDelay,
		MaxReplyDelay: defaultMaxReplyDelay,
	}
}

func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.MinReplyDelay < 0 {
		return fmt.Errorf("min reply delay must be non-negative, got %v", c.MinReplyDelay)
	}
	if c.MaxReplyDelay <= c.MinReplyDelay {
		return fmt.Errorf("max reply delay %v must exceed min %v", c.MaxReplyDelay, c.MinReplyDelay)
	}
	return nil
}
