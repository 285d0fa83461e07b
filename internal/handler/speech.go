package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"

	"labelscan/internal/config"
	"labelscan/internal/dto"
	"labelscan/internal/logger"
)

// SpeechSynthesizer generates a waveform file for the given text.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) (string, error)
}

// SpeakHandler handles POST /speak by running the two-stage speech pipeline.
func SpeakHandler(synth SpeechSynthesizer, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req dto.SpeakRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
			writeError(w, http.StatusBadRequest, "No text provided")
			return
		}

		audioPath, err := synth.Synthesize(r.Context(), req.Text)
		if err != nil {
			logger.Error("Speech synthesis failed: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to generate speech")
			return
		}

		writeJSON(w, http.StatusOK, dto.SpeakResponse{AudioPath: filepath.Base(audioPath)})
	}
}

// AudioHandler serves a generated wav file specified via the "file" query parameter.
func AudioHandler(config *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file := r.URL.Query().Get("file")
		if file == "" {
			http.Error(w, "File parameter is required", http.StatusBadRequest)
			return
		}
		filePath := filepath.Join(config.AudioDirectory, filepath.Base(file))
		http.ServeFile(w, r, filePath)
	}
}
