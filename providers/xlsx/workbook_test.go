package xlsx

import (
	"bytes"
	"context"
	"testing"

	"research-atlas/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

func seedWorkbook(t *testing.T, store *storage.MemoryStore, rows [][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Projects"))
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Projects", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, store.Put(context.Background(), "catalog.xlsx", buf.Bytes()))
}

func TestOpenMissingSheet(t *testing.T) {
	store := storage.NewMemoryStore()
	seedWorkbook(t, store, nil)

	_, err := Open(context.Background(), store, "catalog.xlsx", "Nope", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOpenMissingObject(t *testing.T) {
	_, err := Open(context.Background(), storage.NewMemoryStore(), "catalog.xlsx", "Projects", zaptest.NewLogger(t))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRowsHeaderAndAppend(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seedWorkbook(t, store, [][]interface{}{
		{"country", "city", "approved"},
		{"Kenya", "Nairobi", "TRUE"},
	})

	wb, err := Open(ctx, store, "catalog.xlsx", "Projects", zaptest.NewLogger(t))
	require.NoError(t, err)

	header, err := wb.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"country", "city", "approved"}, header)

	require.NoError(t, wb.AppendRow(ctx, []string{"Ghana", "Accra", "FALSE"}))

	rows, err := wb.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{
		{"country": "Kenya", "city": "Nairobi", "approved": "TRUE"},
		{"country": "Ghana", "city": "Accra", "approved": "FALSE"},
	}, rows)
}

func TestAppendToEmptySheet(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	seedWorkbook(t, store, nil)

	wb, err := Open(ctx, store, "catalog.xlsx", "Projects", zaptest.NewLogger(t))
	require.NoError(t, err)

	header, err := wb.Header(ctx)
	require.NoError(t, err)
	assert.Empty(t, header)

	require.NoError(t, wb.AppendRow(ctx, []string{"a", "b"}))
	header, err = wb.Header(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
}
