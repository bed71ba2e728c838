package gsheets

import (
	"context"
	"fmt"
	"strings"

	"research-atlas/providers"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scopes für Tabellen- und Dateizugriff des Service-Accounts.
var Scopes = []string{sheets.SpreadsheetsScope, sheets.DriveScope}

// Sheet ist ein Worksheet innerhalb einer Google-Tabelle.
type Sheet struct {
	service       *sheets.Service
	spreadsheetID string
	title         string
	Logger        *zap.Logger
}

var _ providers.Worksheet = (*Sheet)(nil)

// Open autorisiert sich mit den übergebenen Optionen und prüft, ob das Worksheet existiert.
func Open(ctx context.Context, spreadsheetID, title string, logger *zap.Logger, opts ...option.ClientOption) (*Sheet, error) {
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	ss, err := srv.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", spreadsheetID, err)
	}
	found := false
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("worksheet %q not found", title)
	}

	logger.Debug("Worksheet geöffnet.", zap.String("spreadsheet_id", spreadsheetID), zap.String("worksheet", title))
	return &Sheet{service: srv, spreadsheetID: spreadsheetID, title: title, Logger: logger}, nil
}

func (s *Sheet) Name() string { return s.title }

// Rows liest das gesamte Worksheet.
func (s *Sheet) Rows(ctx context.Context) ([]map[string]string, error) {
	grid, err := s.values(ctx, quoteTitle(s.title))
	if err != nil {
		return nil, err
	}
	return providers.RowsFromGrid(grid), nil
}

// Header liest Zeile 1.
func (s *Sheet) Header(ctx context.Context) ([]string, error) {
	grid, err := s.values(ctx, quoteTitle(s.title)+"!1:1")
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, nil
	}
	return providers.TrimHeader(grid[0]), nil
}

// AppendRow hängt die Werte unverändert (RAW) als neue Zeile an.
func (s *Sheet) AppendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	_, err := s.service.Spreadsheets.Values.
		Append(s.spreadsheetID, quoteTitle(s.title)+"!A1", &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", s.title, err)
	}
	return nil
}

func (s *Sheet) values(ctx context.Context, rng string) ([][]string, error) {
	vr, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	grid := make([][]string, len(vr.Values))
	for i, r := range vr.Values {
		cells := make([]string, len(r))
		for j, v := range r {
			if v != nil {
				cells[j] = fmt.Sprint(v)
			}
		}
		grid[i] = cells
	}
	return grid, nil
}

// quoteTitle setzt den Blattnamen für A1-Notation in Hochkommas.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}
