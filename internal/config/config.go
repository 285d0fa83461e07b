package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	Password        string
	ModelPath       string
	ModelConfigPath string
	LabelsPath      string
	OCRLanguage     string
	UploadDirectory string
	AudioDirectory  string
	AcousticBinary  string // Acoustic-feature model command (text -> feature file)
	VocoderBinary   string // Vocoder command (feature file -> wav)
	DatabasePath    string
	LogDirectory    string
}

// Load reads configuration from the environment, falling back to defaults.
// A .env file in the working directory is applied first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnvAsInt("PORT", 8080),
		Password:        getEnv("PASSWORD", "labelscan"),
		ModelPath:       getEnv("MODEL_PATH", filepath.Join(".", "models", "label_detector.onnx")),
		ModelConfigPath: getEnv("MODEL_CONFIG_PATH", ""),
		LabelsPath:      getEnv("LABELS_PATH", filepath.Join(".", "models", "labels.txt")),
		OCRLanguage:     getEnv("OCR_LANGUAGE", "eng"),
		UploadDirectory: getEnv("UPLOAD_DIR", filepath.Join(".", "uploads")),
		AudioDirectory:  getEnv("AUDIO_DIR", filepath.Join(".", "audio")),
		AcousticBinary:  getEnv("ACOUSTIC_BIN", "acoustic-infer"),
		VocoderBinary:   getEnv("VOCODER_BIN", "vocoder-infer"),
		DatabasePath:    getEnv("DB_PATH", filepath.Join(".", "labelscan.db")),
		LogDirectory:    getEnv("LOG_DIR", filepath.Join(".", "logs")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
