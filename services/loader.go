package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"research-atlas/models"

	"go.uber.org/zap"
)

// EmptyStoreDiagnostic wird gemeldet, wenn der Store keine Datenzeilen hat.
const EmptyStoreDiagnostic = "empty store; using local fallback."

// Loader lädt die freigegebenen Projekte einmal pro Prozess. Das Ergebnis wird
// danach nur noch gelesen; neue Freigaben im Store erscheinen erst nach einem Neustart.
type Loader struct {
	Connector *Connector
	Logger    *zap.Logger

	mu     sync.Mutex
	cached *LoadResult
}

// NewLoader erstellt einen neuen Loader über dem Connector.
func NewLoader(conn *Connector, logger *zap.Logger) *Loader {
	return &Loader{Connector: conn, Logger: logger}
}

// Load liefert den gecachten Katalog und lädt ihn beim ersten Aufruf.
func (l *Loader) Load(ctx context.Context) LoadResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cached == nil {
		res := l.load(context.WithoutCancel(ctx))
		l.cached = &res
		l.Logger.Info("Katalog geladen.",
			zap.String("outcome", string(res.Outcome)),
			zap.Int("records", len(res.Records)),
			zap.String("diagnostic", res.Diagnostic))
	}
	return *l.cached
}

// Invalidate verwirft den Cache. Der Server ruft es nicht auf.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

func (l *Loader) load(ctx context.Context) (res LoadResult) {
	sheet, cerr := l.Connector.Open(ctx)
	if cerr != nil {
		outcome := OutcomeFailed
		if cerr.Soft() {
			outcome = OutcomeFallback
		}
		return fallback(outcome, cerr.Msg)
	}

	defer func() {
		if r := recover(); r != nil {
			res = fallback(OutcomeFailed, fmt.Sprint(r))
		}
	}()

	rows, err := sheet.Rows(ctx)
	if err != nil {
		return fallback(OutcomeFailed, err.Error())
	}
	if len(rows) == 0 {
		return fallback(OutcomeFallback, EmptyStoreDiagnostic)
	}

	records := make([]models.ProjectRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.RecordFromRow(row))
	}
	if hasColumn(rows, models.ColApproved) {
		records = FilterApproved(records)
	} else {
		l.Logger.Warn("Store hat keine approved-Spalte; alle Zeilen sind sichtbar.")
	}

	return LoadResult{Records: records, Live: true, Outcome: OutcomeLive}
}

// FilterApproved behält nur Datensätze mit approved == "TRUE" (ohne Groß-/Kleinschreibung).
func FilterApproved(records []models.ProjectRecord) []models.ProjectRecord {
	out := make([]models.ProjectRecord, 0, len(records))
	for _, r := range records {
		if r.IsApproved() {
			out = append(out, r)
		}
	}
	return out
}

func hasColumn(rows []map[string]string, col string) bool {
	for _, row := range rows {
		if _, ok := row[col]; ok {
			return true
		}
	}
	return false
}

func fallback(outcome Outcome, diagnostic string) LoadResult {
	return LoadResult{
		Records:    FallbackRecords(),
		Live:       false,
		Outcome:    outcome,
		Diagnostic: strings.TrimSpace(diagnostic),
	}
}
