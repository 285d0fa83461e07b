package ocr

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"labelscan/internal/config"
	"labelscan/internal/logger"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// ErrImageDecode marks a stored file that is not a decodable image.
// Unlike detection failures this error propagates to the caller, which
// treats it as fatal for the whole request.
var ErrImageDecode = errors.New("unable to decode image")

// Engine wraps the Tesseract OCR engine behind a process-wide handle that
// is initialized once and reused across requests.
type Engine struct {
	language string
	logger   *logger.Logger

	initOnce sync.Once
	client   *gosseract.Client

	// Tesseract mutates per-call state on the client, so calls are
	// serialized even though the trained data itself is read-only.
	mu sync.Mutex
}

// NewEngine creates an Engine for the configured recognition language.
func NewEngine(cfg *config.Config, logger *logger.Logger) *Engine {
	return &Engine{
		language: cfg.OCRLanguage,
		logger:   logger,
	}
}

// ExtractText loads the image at storedPath and returns the recognized
// text with surrounding whitespace trimmed. An empty string is a valid
// result. A file that does not decode as an image fails with
// ErrImageDecode.
func (e *Engine) ExtractText(storedPath string) (string, error) {
	img := gocv.IMRead(storedPath, gocv.IMReadColor)
	if img.Empty() {
		return "", fmt.Errorf("%w: %s", ErrImageDecode, storedPath)
	}
	img.Close()

	e.initOnce.Do(func() {
		e.client = gosseract.NewClient()
		if err := e.client.SetLanguage(e.language); err != nil {
			e.logger.Warning("Could not set OCR language %q: %v", e.language, err)
		}
		e.logger.Info("OCR engine initialized (language %s)", e.language)
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImage(storedPath); err != nil {
		return "", fmt.Errorf("failed to set OCR image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to run OCR: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// Close releases the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
