package services

import (
	"context"
	"fmt"
	"time"

	"research-atlas/models"

	"go.uber.org/zap"
)

// SavedMessage ist die Meldung bei erfolgreichem Anhängen.
const SavedMessage = "Saved."

// TimestampLayout: UTC, Sekundengenauigkeit, abschließendes Z.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Appender hängt Einreichungen als nicht freigegebene Zeilen an das Worksheet an.
// Kein Retry, kein Rollback, keine Duplikaterkennung.
type Appender struct {
	Connector *Connector
	Logger    *zap.Logger

	now func() time.Time
}

// NewAppender erstellt einen Appender, der den gecachten Connector mitbenutzt.
func NewAppender(conn *Connector, logger *zap.Logger) *Appender {
	return &Appender{Connector: conn, Logger: logger, now: time.Now}
}

// Append schreibt eine Einreichung in den Store.
func (a *Appender) Append(ctx context.Context, sub models.Submission) (res SubmitResult) {
	sheet, cerr := a.Connector.Open(ctx)
	if cerr != nil {
		return SubmitResult{OK: false, Outcome: OutcomeFailed, Message: cerr.Msg}
	}

	defer func() {
		if r := recover(); r != nil {
			res = SubmitResult{OK: false, Outcome: OutcomeFailed, Message: fmt.Sprint(r)}
		}
	}()

	record := BuildSubmissionRecord(sub, a.now())
	header, err := sheet.Header(ctx)
	if err != nil {
		return SubmitResult{OK: false, Outcome: OutcomeFailed, Message: err.Error()}
	}
	if err := sheet.AppendRow(ctx, OrderValues(record, header)); err != nil {
		return SubmitResult{OK: false, Outcome: OutcomeFailed, Message: err.Error()}
	}

	a.Logger.Info("Einreichung angehängt.",
		zap.String("worksheet", sheet.Name()),
		zap.String("project_name", sub.ProjectName),
		zap.String("created_at", record[models.ColCreatedAt]))
	return SubmitResult{OK: true, Outcome: OutcomeSaved, Message: SavedMessage}
}

// BuildSubmissionRecord übernimmt die zwölf Felder, erzwingt approved=FALSE und
// setzt created_at.
func BuildSubmissionRecord(sub models.Submission, now time.Time) map[string]string {
	record := sub.Fields()
	record[models.ColApproved] = models.ApprovedFalse
	record[models.ColCreatedAt] = now.UTC().Format(TimestampLayout)
	return record
}

// OrderValues ordnet die Werte nach dem Header; fehlende Spalten werden "",
// Felder ohne Header-Spalte fallen weg. Ohne Header gilt die natürliche Reihenfolge.
func OrderValues(record map[string]string, header []string) []string {
	cols := header
	if len(cols) == 0 {
		cols = models.SubmissionColumns
	}
	values := make([]string, len(cols))
	for i, col := range cols {
		values[i] = record[col]
	}
	return values
}
