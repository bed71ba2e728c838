package services

import (
	"context"
	"fmt"
	"path"
	"sort"
	"time"

	"research-atlas/models"
	"research-atlas/storage"

	"github.com/jszwec/csvutil"
	"go.uber.org/zap"
)

// SnapshotRow ist eine CSV-Zeile des Katalog-Exports.
type SnapshotRow struct {
	Country     string `csv:"country"`
	City        string `csv:"city"`
	Lat         string `csv:"lat"`
	Lon         string `csv:"lon"`
	ProjectName string `csv:"project_name"`
	Years       string `csv:"years"`
	Status      string `csv:"status"`
	DataTypes   string `csv:"data_types"`
	Description string `csv:"description"`
	Contact     string `csv:"contact"`
	Access      string `csv:"access"`
	URL         string `csv:"url"`
	Approved    string `csv:"approved"`
}

// SnapshotExporter schreibt den aktuell gecachten Katalog als CSV in den ObjectStore.
type SnapshotExporter struct {
	Loader *Loader
	Store  storage.ObjectStore
	Prefix string
	Logger *zap.Logger

	now func() time.Time
}

func NewSnapshotExporter(loader *Loader, store storage.ObjectStore, prefix string, logger *zap.Logger) *SnapshotExporter {
	return &SnapshotExporter{Loader: loader, Store: store, Prefix: prefix, Logger: logger, now: time.Now}
}

// Export lädt den Snapshot hoch und gibt den Key zurück. Der Loader-Cache bleibt unberührt.
func (e *SnapshotExporter) Export(ctx context.Context) (string, error) {
	res := e.Loader.Load(ctx)
	data, err := EncodeSnapshot(res.Records)
	if err != nil {
		return "", err
	}
	key := path.Join(e.Prefix, fmt.Sprintf("catalog-%s.csv", e.now().UTC().Format("2006-01-02T15-04-05Z")))
	if err := e.Store.Put(ctx, key, data); err != nil {
		return "", err
	}
	e.Logger.Info("Katalog-Snapshot exportiert",
		zap.String("key", key),
		zap.String("source", string(res.Outcome)),
		zap.Int("records", len(res.Records)))
	return key, nil
}

// EncodeSnapshot serialisiert Datensätze als CSV mit Header.
func EncodeSnapshot(records []models.ProjectRecord) ([]byte, error) {
	rows := make([]SnapshotRow, len(records))
	for i, r := range records {
		rows[i] = SnapshotRow{
			Country:     r.Country,
			City:        r.City,
			Lat:         models.FormatCoordinate(r.Lat),
			Lon:         models.FormatCoordinate(r.Lon),
			ProjectName: r.ProjectName,
			Years:       r.Years,
			Status:      r.Status,
			DataTypes:   r.DataTypes,
			Description: r.Description,
			Contact:     r.Contact,
			Access:      r.Access,
			URL:         r.URL,
			Approved:    r.Approved,
		}
	}
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Rotate behält die keep neuesten Snapshots unter Prefix und löscht den Rest.
// Die Keys enthalten einen sortierbaren UTC-Zeitstempel.
func (e *SnapshotExporter) Rotate(ctx context.Context, keep int) (int, error) {
	lister, ok := e.Store.(storage.Lister)
	if !ok || keep <= 0 {
		return 0, nil
	}
	keys, err := lister.List(ctx, path.Join(e.Prefix, "catalog-"))
	if err != nil {
		return 0, err
	}
	if len(keys) <= keep {
		return 0, nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	deleted := 0
	for _, key := range keys[keep:] {
		if err := lister.Delete(ctx, key); err != nil {
			e.Logger.Warn("Fehler beim Löschen eines alten Snapshots", zap.String("key", key), zap.Error(err))
			continue
		}
		deleted++
	}
	e.Logger.Info("Alte Snapshots rotiert", zap.Int("deleted", deleted), zap.Int("kept", keep))
	return deleted, nil
}
