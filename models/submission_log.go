package models

import (
	"time"

	"gorm.io/datatypes"
)

// SubmissionLog protokolliert jede Einreichung samt Ergebnis beider Schritte.
type SubmissionLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	SubmissionID string `json:"submission_id" gorm:"uniqueIndex;size:36"`
	ProjectName  string `json:"project_name"`
	Country      string `json:"country" gorm:"index"`
	City         string `json:"city"`
	Contact      string `json:"contact"`

	StoreSaved    bool   `json:"store_saved"`
	StoreMessage  string `json:"store_message" gorm:"type:text"`
	NotifySent    bool   `json:"notify_sent"`
	NotifyMessage string `json:"notify_message" gorm:"type:text"`

	Payload datatypes.JSON `json:"payload" gorm:"type:jsonb"`
}

// TableName gibt explizit den Tabellennamen an.
func (SubmissionLog) TableName() string {
	return "submission_logs"
}
