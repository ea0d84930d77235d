package sdk

// Notifier shows short messages to the user. It is the pipeline's only UI side effect.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// NopNotifier discards all messages.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Warning(string) {}
func (NopNotifier) Error(string)   {}
