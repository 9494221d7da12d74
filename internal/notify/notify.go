package notify

import "log/slog"

// Notifier is the toast surface: transient, user-facing, fire-and-forget.
// The transport pushes every failure through it exactly once.
type Notifier interface {
	Notify(message string)
}

// SlogNotifier surfaces notifications through the structured log, which is
// the CLI's equivalent of a toast.
type SlogNotifier struct {
	Logger *slog.Logger
}

func NewSlogNotifier(logger *slog.Logger) *SlogNotifier {
	return &SlogNotifier{Logger: logger}
}

func (n *SlogNotifier) Notify(message string) {
	n.Logger.Warn("notification", "message", message)
}

// Func adapts a plain function to the Notifier interface.
type Func func(message string)

func (f Func) Notify(message string) { f(message) }
