package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"os/exec"
	"path/filepath"

	"labelscan/internal/config"
	"labelscan/internal/logger"
)

// ErrSynthesis marks a failed subprocess stage. The underlying detail is
// logged server-side; callers only see this generic error.
var ErrSynthesis = errors.New("Failed to generate speech")

// Synthesizer turns text into a waveform file via a two-stage subprocess
// pipeline: an acoustic-feature model renders the text to an intermediate
// feature file, then a vocoder turns that into a wav. Every call is
// independent; the Synthesizer itself holds no state beyond configuration.
type Synthesizer struct {
	acousticBin string
	vocoderBin  string
	audioDir    string
	logger      *logger.Logger
}

// NewSynthesizer creates a Synthesizer from the configured commands.
func NewSynthesizer(cfg *config.Config, logger *logger.Logger) *Synthesizer {
	return &Synthesizer{
		acousticBin: cfg.AcousticBinary,
		vocoderBin:  cfg.VocoderBinary,
		audioDir:    cfg.AudioDirectory,
		logger:      logger,
	}
}

// Synthesize generates speech audio for text and returns the path of the
// resulting wav file inside the audio directory.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (string, error) {
	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create audio directory: %w", err)
	}

	base := fmt.Sprintf("speech_%d", textHash(text))
	featurePath := filepath.Join(s.audioDir, base+".mel")
	wavPath := filepath.Join(s.audioDir, base+".wav")

	if err := s.runStage(ctx, s.acousticBin, "--text", text, "--output", featurePath); err != nil {
		s.logger.Error("Acoustic stage failed: %v", err)
		return "", ErrSynthesis
	}
	defer os.Remove(featurePath)

	if err := s.runStage(ctx, s.vocoderBin, "--input", featurePath, "--output", wavPath); err != nil {
		s.logger.Error("Vocoder stage failed: %v", err)
		return "", ErrSynthesis
	}

	s.logger.Info("Generated speech audio %s", wavPath)
	return wavPath, nil
}

// runStage invokes one pipeline command and reports a non-zero exit
// together with whatever the command wrote to stderr.
func (s *Synthesizer) runStage(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", bin, err, stderr.String())
	}
	return nil
}

// textHash gives a stable filename component for the input text.
func textHash(text string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(text))
	return h.Sum32()
}
