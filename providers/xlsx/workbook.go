package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"research-atlas/providers"
	"research-atlas/storage"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Workbook ist ein Worksheet in einer XLSX-Datei, die in einem ObjectStore liegt.
// Jeder Zugriff lädt die aktuelle Fassung; AppendRow schreibt sie zurück.
type Workbook struct {
	store  storage.ObjectStore
	key    string
	sheet  string
	Logger *zap.Logger

	mu sync.Mutex // serialisiert Read-Modify-Write im Prozess
}

var _ providers.Worksheet = (*Workbook)(nil)

// Open lädt das Workbook einmal und prüft, ob das Blatt existiert.
func Open(ctx context.Context, store storage.ObjectStore, key, sheet string, logger *zap.Logger) (*Workbook, error) {
	wb := &Workbook{store: store, key: key, sheet: sheet, Logger: logger}
	f, err := wb.load(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", sheet, err)
	}
	if idx == -1 {
		return nil, fmt.Errorf("worksheet %q not found", sheet)
	}
	logger.Debug("Workbook geöffnet.", zap.String("key", key), zap.String("worksheet", sheet))
	return wb, nil
}

func (w *Workbook) Name() string { return w.sheet }

func (w *Workbook) Rows(ctx context.Context) ([]map[string]string, error) {
	grid, err := w.grid(ctx)
	if err != nil {
		return nil, err
	}
	return providers.RowsFromGrid(grid), nil
}

func (w *Workbook) Header(ctx context.Context) ([]string, error) {
	grid, err := w.grid(ctx)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 {
		return nil, nil
	}
	return providers.TrimHeader(grid[0]), nil
}

// AppendRow schreibt die Werte in die erste Zeile nach der letzten belegten Zeile.
func (w *Workbook) AppendRow(ctx context.Context, values []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := w.load(ctx)
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.sheet, err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(w.sheet, cell, &row); err != nil {
		return fmt.Errorf("write row %s: %w", cell, err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("serialize workbook: %w", err)
	}
	return w.store.Put(ctx, w.key, buf.Bytes())
}

func (w *Workbook) grid(ctx context.Context) ([][]string, error) {
	f, err := w.load(ctx)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", w.sheet, err)
	}
	return rows, nil
}

func (w *Workbook) load(ctx context.Context) (*excelize.File, error) {
	data, err := w.store.Get(ctx, w.key)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", w.key, err)
	}
	return f, nil
}
