package main

import (
	"context"
	"log"

	"research-atlas/config"
	"research-atlas/services"
	"research-atlas/storage"

	"go.uber.org/zap"
)

// Einmaliger Export des Katalogs nach S3, z.B. als Kubernetes-CronJob.
func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	logging.Info("Starte Snapshot-Export...")

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Fehler beim Laden der Konfiguration", zap.Error(err))
	}

	// 1. S3-Bucket
	bucket, err := storage.NewBucket(cfg)
	if err != nil {
		logging.Fatal("Fehler beim Erstellen des S3-Clients", zap.Error(err))
	}

	// 2. Katalog laden (live oder Fallback) und hochladen
	connector := services.NewConnector(cfg, logging, bucket)
	loader := services.NewLoader(connector, logging)
	exporter := services.NewSnapshotExporter(loader, bucket, cfg.SnapshotPrefix, logging)

	ctx := context.Background()
	key, err := exporter.Export(ctx)
	if err != nil {
		logging.Fatal("Fehler beim Hochladen nach S3", zap.Error(err))
	}
	logging.Info("Snapshot erfolgreich hochgeladen", zap.String("url", bucket.URL(key)))

	// 3. Alte Snapshots rotieren
	if _, err := exporter.Rotate(ctx, cfg.KeepSnapshots); err != nil {
		logging.Fatal("Fehler bei der Rotation alter Snapshots", zap.Error(err))
	}

	logging.Info("Snapshot-Export erfolgreich abgeschlossen.")
}
