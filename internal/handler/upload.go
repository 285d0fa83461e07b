package handler

import (
	"errors"
	"net/http"

	"labelscan/internal/dto"
	"labelscan/internal/logger"
	"labelscan/internal/service/upload"
)

// Inferrer runs the dual-extraction pipeline over one stored upload.
type Inferrer interface {
	Infer(file upload.UploadedFile) dto.InferenceResponse
}

// UploadImageHandler handles POST /upload-image: it persists the multipart
// "image" field and runs the inference pipeline over the stored file.
func UploadImageHandler(store *upload.Store, pipeline Inferrer, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		defer file.Close()

		stored, err := store.Store(file, header.Filename)
		if errors.Is(err, upload.ErrNoFile) {
			writeError(w, http.StatusBadRequest, "No file uploaded")
			return
		}
		if err != nil {
			logger.Error("Failed to store upload %q: %v", header.Filename, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		response := pipeline.Infer(stored)
		if response.Failed() {
			writeJSON(w, http.StatusInternalServerError, response)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}
