package services

import (
	"context"
	"encoding/json"

	"research-atlas/models"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog schreibt jede Einreichung in die Tabelle submission_logs.
// Ein nil-AuditLog ist ein No-Op.
type AuditLog struct {
	DB     *gorm.DB
	Logger *zap.Logger
}

func NewAuditLog(db *gorm.DB, logger *zap.Logger) *AuditLog {
	return &AuditLog{DB: db, Logger: logger}
}

// Record speichert die Einreichung samt beider Ergebnisse.
func (a *AuditLog) Record(ctx context.Context, id string, sub models.Submission, store, notify SubmitResult) error {
	if a == nil || a.DB == nil {
		return nil
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	entry := models.SubmissionLog{
		SubmissionID:  id,
		ProjectName:   sub.ProjectName,
		Country:       sub.Country,
		City:          sub.City,
		Contact:       sub.Contact,
		StoreSaved:    store.OK,
		StoreMessage:  store.Message,
		NotifySent:    notify.OK,
		NotifyMessage: notify.Message,
		Payload:       datatypes.JSON(payload),
	}
	return a.DB.WithContext(ctx).Create(&entry).Error
}
