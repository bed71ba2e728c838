package providers

import (
	"context"
	"strings"
)

// Worksheet ist das Interface, das jedes Tabellen-Backend (z.B. Google Sheets, XLSX) implementieren muss.
type Worksheet interface {
	// Rows liest alle Datenzeilen, Schlüssel sind die Spaltenköpfe aus Zeile 1.
	Rows(ctx context.Context) ([]map[string]string, error)

	// Header liefert Zeile 1; leer, wenn das Blatt leer ist.
	Header(ctx context.Context) ([]string, error)

	// AppendRow hängt eine Zeile hinter der letzten belegten Zeile an.
	AppendRow(ctx context.Context, values []string) error

	// Name gibt den Namen des Worksheets zurück.
	Name() string
}

// RowsFromGrid wandelt ein Zellraster in Zeilen-Maps um. Die erste Zeile ist der
// Header; Zellen ohne Header werden ignoriert, kurze Zeilen mit "" aufgefüllt,
// komplett leere Zeilen übersprungen.
func RowsFromGrid(grid [][]string) []map[string]string {
	if len(grid) == 0 {
		return nil
	}
	header := TrimHeader(grid[0])
	var rows []map[string]string
	for _, cells := range grid[1:] {
		if isBlank(cells) {
			continue
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(cells) {
				row[col] = cells[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// TrimHeader entfernt Leerzeichen und leere Spalten am Ende des Headers.
func TrimHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
