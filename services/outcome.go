package services

import "research-atlas/models"

// Outcome unterscheidet Erfolg, weiche Degradierung und harten Fehler.
type Outcome string

const (
	// OutcomeLive: Daten kommen aus dem Store.
	OutcomeLive Outcome = "live"
	// OutcomeFallback: Store nicht konfiguriert oder leer, lokale Beispieldaten.
	OutcomeFallback Outcome = "fallback"
	// OutcomeSaved: Einreichung im Store angehängt.
	OutcomeSaved Outcome = "saved"
	// OutcomeSent: Benachrichtigung verschickt.
	OutcomeSent Outcome = "sent"
	// OutcomeSkipped: Schritt nicht konfiguriert, nichts versucht.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed: Schritt versucht und fehlgeschlagen.
	OutcomeFailed Outcome = "failed"
)

// LoadResult ist das Ergebnis des Katalog-Ladens.
type LoadResult struct {
	Records    []models.ProjectRecord
	Live       bool
	Outcome    Outcome
	Diagnostic string
}

// SubmitResult ist das Ergebnis eines Einreichungsschritts (Store oder Mail).
type SubmitResult struct {
	OK      bool    `json:"ok"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message"`
}
