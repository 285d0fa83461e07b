package handler

import (
	"encoding/json"
	"net/http"

	"labelscan/internal/dto"
	"labelscan/internal/logger"
	"labelscan/internal/service/detect"
)

// Detector is the detection-only pass used by /infer.
type Detector interface {
	Detect(storedPath string) string
}

// InferHandler handles POST /infer: the caller already has OCR text and
// only asks for a detection pass over an image path it stored earlier.
// The caller's OCR text is echoed back unchanged.
func InferHandler(detector Detector, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req dto.InferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImagePath == "" {
			writeError(w, http.StatusBadRequest, "No image path provided")
			return
		}

		result := detector.Detect(req.ImagePath)
		if detect.IsErrorResult(result) {
			// Only the fixed message goes out; the detail stays in the logs.
			logger.Error("Inference failed for %s: %s", req.ImagePath, result)
			writeError(w, http.StatusInternalServerError, "Failed to run inference")
			return
		}

		writeJSON(w, http.StatusOK, dto.Success(req.OCRText, result))
	}
}
