package conversation

// Logger is the logging interface the conversation manager depends on.
// services.Logger satisfies it.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
func (noopLogger) Debug(msg string, keysAndValues ...interface{}) {}

// Notifier receives short-lived user-facing notifications for transient UI
// display. Calls are fire-and-forget: they carry no state and are never
// retried or queued.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// NoopNotifier discards all notifications.
type NoopNotifier struct{}

func (NoopNotifier) Success(msg string) {}
func (NoopNotifier) Error(msg string)   {}
func (NoopNotifier) Info(msg string)    {}

// TypingListener observes transitions of a room's typing flag. Invoked
// outside the manager lock.
type TypingListener func(chatroomID string, typing bool)
