package services

import (
	"context"

	"research-atlas/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionReport enthält beide Teilergebnisse einer Einreichung.
type SubmissionReport struct {
	ID           string       `json:"id"`
	Store        SubmitResult `json:"store"`
	Notification SubmitResult `json:"notification"`
}

// SubmissionService führt Store-Schreiben und Benachrichtigung unabhängig
// nacheinander aus. Es gibt keine Kompensation, wenn nur einer der Schritte klappt.
type SubmissionService struct {
	Appender *Appender
	Notifier *Notifier
	Audit    *AuditLog
	Logger   *zap.Logger
}

func NewSubmissionService(app *Appender, notifier *Notifier, audit *AuditLog, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{Appender: app, Notifier: notifier, Audit: audit, Logger: logger}
}

// Submit führt beide Schritte aus und protokolliert das Ergebnis.
func (s *SubmissionService) Submit(ctx context.Context, sub models.Submission) SubmissionReport {
	id := uuid.NewString()
	log := s.Logger.With(zap.String("submission_id", id))

	report := SubmissionReport{
		ID:           id,
		Store:        s.Appender.Append(ctx, sub),
		Notification: s.Notifier.Notify(ctx, sub),
	}
	if !report.Store.OK {
		log.Warn("Einreichung nicht gespeichert", zap.String("message", report.Store.Message))
	}

	if err := s.Audit.Record(ctx, id, sub, report.Store, report.Notification); err != nil {
		log.Warn("Failed to write submission log", zap.Error(err))
	}

	log.Info("Einreichung verarbeitet",
		zap.String("store", string(report.Store.Outcome)),
		zap.String("notification", string(report.Notification.Outcome)))
	return report
}
