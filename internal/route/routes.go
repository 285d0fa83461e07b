package route

import (
	"net/http"

	"labelscan/internal/config"
	"labelscan/internal/handler"
	"labelscan/internal/logger"
	"labelscan/internal/middleware"
	"labelscan/internal/repository"
	"labelscan/internal/service/events"
	"labelscan/internal/service/inference"
	"labelscan/internal/service/upload"
)

// SetupRoutes registers the inference, speech, record and log endpoints
// and wraps the mux with the authentication middleware.
func SetupRoutes(cfg *config.Config, logger *logger.Logger,
	store *upload.Store, orchestrator *inference.Orchestrator,
	detector handler.Detector, synthesizer handler.SpeechSynthesizer, hub *events.Hub,
	recordRepo repository.RecordRepository, labelRepo repository.LabelRepository) http.Handler {
	mux := http.NewServeMux()

	// Inference endpoints
	mux.HandleFunc("/upload-image", handler.UploadImageHandler(store, orchestrator, logger))
	mux.HandleFunc("/infer", handler.InferHandler(detector, logger))

	// Speech endpoints
	mux.HandleFunc("/speak", handler.SpeakHandler(synthesizer, logger))
	mux.HandleFunc("/audio", handler.AudioHandler(cfg))

	// Event stream
	mux.HandleFunc("/api/events", handler.EventsHandler(hub, logger))

	// Record endpoints
	mux.HandleFunc("/api/records", handler.GetRecordsHandler(logger, recordRepo, labelRepo))
	mux.HandleFunc("/api/records/delete", handler.DeleteRecordHandler(logger, recordRepo, labelRepo))
	mux.HandleFunc("/api/records/clear", handler.ClearRecordsHandler(logger, recordRepo))

	// Log endpoints
	mux.HandleFunc("/logs/info", handler.ShowInfoLogsHandler(cfg))
	mux.HandleFunc("/logs/warning", handler.ShowWarningLogsHandler(cfg))
	mux.HandleFunc("/logs/error", handler.ShowErrorLogsHandler(cfg))

	mux.HandleFunc("/logs/info/clear", handler.ClearInfoLogsHandler(logger))
	mux.HandleFunc("/logs/warning/clear", handler.ClearWarningLogsHandler(logger))
	mux.HandleFunc("/logs/error/clear", handler.ClearErrorLogsHandler(logger))

	// Auth endpoints
	mux.HandleFunc("/auth/login", handler.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handler.LogoutHandler)

	// Apply middleware
	return middleware.AuthMiddleware(mux)
}
