package app

import (
	"fmt"
	"net/http"

	"labelscan/internal/config"
	"labelscan/internal/logger"
	"labelscan/internal/repository/sqlite"
	"labelscan/internal/route"
	"labelscan/internal/service/detect"
	"labelscan/internal/service/events"
	"labelscan/internal/service/inference"
	"labelscan/internal/service/ocr"
	"labelscan/internal/service/speech"
	"labelscan/internal/service/upload"
)

type App struct {
	config       *config.Config
	logger       *logger.Logger
	db           *sqlite.DB
	recordRepo   *sqlite.RecordRepository
	labelRepo    *sqlite.LabelRepository
	store        *upload.Store
	ocrEngine    *ocr.Engine
	detector     *detect.Detector
	synthesizer  *speech.Synthesizer
	hub          *events.Hub
	orchestrator *inference.Orchestrator
}

func NewApp() (*App, error) {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	recordRepo := sqlite.NewRecordRepository(db)
	labelRepo := sqlite.NewLabelRepository(db)

	store := upload.NewStore(cfg.UploadDirectory, log)
	ocrEngine := ocr.NewEngine(cfg, log)
	detector := detect.NewDetector(cfg, log)
	synthesizer := speech.NewSynthesizer(cfg, log)
	hub := events.NewHub(log)

	orchestrator := inference.NewOrchestrator(ocrEngine, detector, recordRepo, labelRepo, hub, log)

	if err := detector.Warmup(); err != nil {
		// The process still serves: detection renders this as an
		// "Error: ..." result instead of refusing requests.
		log.Warning("Could not initialize detection network: %v", err)
	}

	return &App{
		config:       cfg,
		logger:       log,
		db:           db,
		recordRepo:   recordRepo,
		labelRepo:    labelRepo,
		store:        store,
		ocrEngine:    ocrEngine,
		detector:     detector,
		synthesizer:  synthesizer,
		hub:          hub,
		orchestrator: orchestrator,
	}, nil
}

func (a *App) Run() error {
	// Start background services
	go a.hub.Run()

	// Setup routes
	router := route.SetupRoutes(a.config, a.logger, a.store, a.orchestrator,
		a.detector, a.synthesizer, a.hub, a.recordRepo, a.labelRepo)

	fmt.Printf("🔎 Label Scan Server\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📁 Uploads: %s\n", a.config.UploadDirectory)
	fmt.Printf("🤖 Model: %s\n", a.config.ModelPath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}

// Close releases the shared model, OCR and database handles.
func (a *App) Close() {
	a.detector.Close()
	if err := a.ocrEngine.Close(); err != nil {
		a.logger.Error("Error closing OCR engine: %v", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database: %v", err)
	}
}
