package services

import (
	"context"
	"errors"

	"research-atlas/models"
	"research-atlas/providers/emailjs"

	"go.uber.org/zap"
)

// NotConfiguredMessage wird ohne Netzwerkzugriff zurückgegeben.
const NotConfiguredMessage = "not configured"

// Mailer verschickt eine Template-Mail.
type Mailer interface {
	Send(ctx context.Context, params map[string]string) error
}

// Notifier benachrichtigt per Mail über eine Einreichung. Unabhängig vom Appender.
type Notifier struct {
	Mailer Mailer
	Logger *zap.Logger
}

func NewNotifier(mailer Mailer, logger *zap.Logger) *Notifier {
	return &Notifier{Mailer: mailer, Logger: logger}
}

// Notify versucht genau einen Versand.
func (n *Notifier) Notify(ctx context.Context, sub models.Submission) SubmitResult {
	err := n.Mailer.Send(ctx, sub.Fields())
	switch {
	case err == nil:
		return SubmitResult{OK: true, Outcome: OutcomeSent, Message: "Notification sent."}
	case errors.Is(err, emailjs.ErrNotConfigured):
		return SubmitResult{OK: false, Outcome: OutcomeSkipped, Message: NotConfiguredMessage}
	default:
		n.Logger.Warn("Benachrichtigung fehlgeschlagen.", zap.Error(err))
		return SubmitResult{OK: false, Outcome: OutcomeFailed, Message: err.Error()}
	}
}
