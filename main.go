package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"research-atlas/config"
	"research-atlas/models"
	"research-atlas/providers/emailjs"
	"research-atlas/services"
	"research-atlas/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	catalogRequestsCounter *prometheus.CounterVec
	submissionStepsCounter *prometheus.CounterVec
	snapshotsCounter       prometheus.Counter
)

func init() {
	catalogRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Catalog requests served, by data source (live or fallback).",
		},
		[]string{"source"},
	)
	submissionStepsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_steps_total",
			Help: "Submission side effects by step and outcome.",
		},
		[]string{"step", "outcome"},
	)
	snapshotsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "snapshots_exported_total",
			Help: "Total number of catalog snapshots uploaded.",
		},
	)
	prometheus.MustRegister(catalogRequestsCounter, submissionStepsCounter, snapshotsCounter)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Optionaler Object Store (XLSX-Backend, Snapshots)
	var objects storage.ObjectStore
	if cfg.HasS3() {
		bucket, err := storage.NewBucket(cfg)
		if err != nil {
			logging.Warn("S3 client creation failed; xlsx store and snapshots disabled", zap.Error(err))
		} else {
			objects = bucket
		}
	}

	// Optionales Audit-Log
	var audit *services.AuditLog
	if cfg.AuditConfigured() {
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			logging.Warn("Failed to connect to audit database; submissions are not logged", zap.Error(err))
		} else {
			logging.Info("Running database auto-migration...")
			if err := db.AutoMigrate(&models.SubmissionLog{}); err != nil {
				logging.Warn("Auto-migration failed", zap.Error(err))
			}
			audit = services.NewAuditLog(db, logging)
		}
	}

	// Setup Services
	connector := services.NewConnector(cfg, logging, objects)
	loader := services.NewLoader(connector, logging)
	submissions := services.NewSubmissionService(
		services.NewAppender(connector, logging),
		services.NewNotifier(emailjs.NewSender(cfg, logging), logging),
		audit,
		logging,
	)

	router := newRouter(loader, submissions, logging)

	// Setup Cron
	if cfg.SnapshotConfigured() && objects != nil {
		exporter := services.NewSnapshotExporter(loader, objects, cfg.SnapshotPrefix, logging)
		cronScheduler := cron.New()
		if _, err := cronScheduler.AddFunc(cfg.SnapshotCron, func() { runSnapshot(exporter, cfg.KeepSnapshots, logging) }); err != nil {
			logging.Warn("Invalid SNAPSHOT_CRON; snapshots disabled", zap.String("schedule", cfg.SnapshotCron), zap.Error(err))
		} else {
			cronScheduler.Start()
			defer cronScheduler.Stop()
			logging.Info("Snapshot job scheduled", zap.String("schedule", cfg.SnapshotCron))
		}
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func runSnapshot(exporter *services.SnapshotExporter, keep int, log *zap.Logger) {
	log.Info("Running scheduled snapshot job...")
	ctx := context.Background()
	key, err := exporter.Export(ctx)
	if err != nil {
		log.Error("Snapshot job failed", zap.Error(err))
		return
	}
	snapshotsCounter.Inc()
	if _, err := exporter.Rotate(ctx, keep); err != nil {
		log.Warn("Snapshot rotation failed", zap.Error(err))
	}
	log.Info("Snapshot job completed", zap.String("key", key))
}

func newRouter(loader *services.Loader, submissions *services.SubmissionService, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "research-atlas"})
	})

	setupProjectRoutes(router, loader)
	setupSubmissionRoutes(router, submissions, log)
	return router
}

func sourceName(res services.LoadResult) string {
	if res.Live {
		return "live"
	}
	return "fallback"
}

func setupProjectRoutes(router *gin.Engine, loader *services.Loader) {
	// GET /projects?country=Kenya
	router.GET("/projects", func(c *gin.Context) {
		res := loader.Load(c.Request.Context())
		catalogRequestsCounter.WithLabelValues(sourceName(res)).Inc()
		projects := services.FilterByCountry(res.Records, c.Query("country"))
		c.JSON(http.StatusOK, gin.H{
			"source":     sourceName(res),
			"outcome":    res.Outcome,
			"diagnostic": res.Diagnostic,
			"count":      len(projects),
			"projects":   projects,
		})
	})

	// Auswahl für den Länderfilter, "all" immer zuerst
	router.GET("/countries", func(c *gin.Context) {
		res := loader.Load(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"source":    sourceName(res),
			"countries": append([]string{services.AllCountries}, services.Countries(res.Records)...),
		})
	})

	router.GET("/markers", func(c *gin.Context) {
		res := loader.Load(c.Request.Context())
		catalogRequestsCounter.WithLabelValues(sourceName(res)).Inc()
		markers := services.GroupMarkers(services.FilterByCountry(res.Records, c.Query("country")))
		if markers == nil {
			markers = []models.Marker{}
		}
		c.JSON(http.StatusOK, gin.H{
			"source":  sourceName(res),
			"markers": markers,
		})
	})
}

func setupSubmissionRoutes(router *gin.Engine, submissions *services.SubmissionService, log *zap.Logger) {
	// Beide Teilergebnisse werden immer gemeldet; 200 auch wenn ein Schritt fehlschlägt.
	router.POST("/submissions", func(c *gin.Context) {
		var sub models.Submission
		if err := c.ShouldBindJSON(&sub); err != nil {
			log.Warn("Invalid request body for submission", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		report := submissions.Submit(c.Request.Context(), sub)
		submissionStepsCounter.WithLabelValues("store", string(report.Store.Outcome)).Inc()
		submissionStepsCounter.WithLabelValues("notification", string(report.Notification.Outcome)).Inc()

		var warnings []string
		if !report.Store.OK {
			warnings = append(warnings, "Submission could not be saved: "+report.Store.Message)
		}
		if report.Notification.Outcome == services.OutcomeFailed {
			warnings = append(warnings, "Notification failed: "+report.Notification.Message)
		}
		c.JSON(http.StatusOK, gin.H{
			"id":           report.ID,
			"store":        report.Store,
			"notification": report.Notification,
			"warnings":     warnings,
		})
	})
}
