package detect

import (
	"fmt"
	"image"
	"os"
	"strings"
	"sync"

	"labelscan/internal/config"
	"labelscan/internal/logger"

	"gocv.io/x/gocv"
)

const (
	// DetectionThreshold is the minimum confidence for a region to count.
	DetectionThreshold = 0.5

	// NoLabels is returned when the model ran but found nothing. It is
	// distinct from an empty string so callers can tell "ran and found
	// nothing" from "did not run".
	NoLabels = "No text detected"

	// LoadError is returned when the stored file cannot be decoded.
	LoadError = "Error: Unable to load image."
)

// Detector wraps the trained label-detection network. Its Detect method
// never fails: every internal error is rendered as an "Error: ..." string
// so callers can treat the output uniformly as data.
type Detector struct {
	modelPath  string
	configPath string
	labelsPath string
	logger     *logger.Logger

	initOnce sync.Once
	initErr  error
	loaded   bool
	net      gocv.Net
	labels   []string
}

// NewDetector creates a Detector. The network itself is loaded once, on
// first use, and shared read-only by all subsequent calls.
func NewDetector(cfg *config.Config, logger *logger.Logger) *Detector {
	return &Detector{
		modelPath:  cfg.ModelPath,
		configPath: cfg.ModelConfigPath,
		labelsPath: cfg.LabelsPath,
		logger:     logger,
	}
}

// Warmup forces network initialization ahead of the first request.
func (d *Detector) Warmup() error {
	return d.ensureNet()
}

// Close releases the network.
func (d *Detector) Close() {
	if d.loaded {
		d.net.Close()
	}
}

// ensureNet loads the network and class names exactly once.
func (d *Detector) ensureNet() error {
	d.initOnce.Do(func() {
		if _, err := os.Stat(d.modelPath); os.IsNotExist(err) {
			d.initErr = fmt.Errorf("model file not found: %s", d.modelPath)
			return
		}

		labels, err := loadLabels(d.labelsPath)
		if err != nil {
			d.initErr = err
			return
		}

		net := gocv.ReadNet(d.modelPath, d.configPath)
		if net.Empty() {
			d.initErr = fmt.Errorf("failed to load network from %s", d.modelPath)
			return
		}

		errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
		errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
		if errBackend != nil || errTarget != nil {
			net.Close()
			d.initErr = fmt.Errorf("failed to set preferable backend or target")
			return
		}

		d.net = net
		d.labels = labels
		d.loaded = true
		d.logger.Info("Detection network initialized with %d class names", len(labels))
	})

	return d.initErr
}

// Detect runs the detection model over the stored image and returns the
// detected class names joined with "," in detection order. It returns
// LoadError when the image cannot be decoded, NoLabels when the model
// found nothing, and "Error: <message>" for any other internal failure.
func (d *Detector) Detect(storedPath string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Detection panic on %s: %v", storedPath, r)
			result = fmt.Sprintf("Error: %v", r)
		}
	}()

	img := gocv.IMRead(storedPath, gocv.IMReadColor)
	if img.Empty() {
		return LoadError
	}
	defer img.Close()

	if err := d.ensureNet(); err != nil {
		d.logger.Error("Detection network unavailable: %v", err)
		return fmt.Sprintf("Error: %v", err)
	}

	labels, err := d.forward(img)
	if err != nil {
		d.logger.Error("Detection failed on %s: %v", storedPath, err)
		return fmt.Sprintf("Error: %v", err)
	}

	return FormatLabels(labels)
}

// forward runs one forward pass and maps each detected region's class
// index to its class name, preserving the model's output order and any
// duplicate labels.
func (d *Detector) forward(img gocv.Mat) ([]string, error) {
	blob := gocv.BlobFromImage(img, 1.0/127.5, image.Pt(300, 300), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")

	output := d.net.Forward("")
	defer output.Close()

	var labels []string

	outputReshaped := output.Reshape(1, output.Total()/7)
	defer outputReshaped.Close()

	for i := 0; i < outputReshaped.Rows(); i++ {
		confidence := outputReshaped.GetFloatAt(i, 2)
		if confidence > DetectionThreshold {
			classID := int(outputReshaped.GetFloatAt(i, 1))
			labels = append(labels, d.className(classID))
		}
	}

	return labels, nil
}

// className maps a class index to its name from the labels file.
func (d *Detector) className(classID int) string {
	if classID >= 0 && classID < len(d.labels) {
		return d.labels[classID]
	}
	return fmt.Sprintf("unknown_%d", classID)
}

// FormatLabels flattens detected class names into the wire representation:
// a comma-joined list in detection order, or NoLabels when empty.
func FormatLabels(labels []string) string {
	if len(labels) == 0 {
		return NoLabels
	}
	return strings.Join(labels, ",")
}

// IsErrorResult reports whether a detection result is the error-string
// variant rather than labels or the NoLabels sentinel.
func IsErrorResult(result string) bool {
	return strings.HasPrefix(result, "Error:")
}

// SplitLabels reverses FormatLabels: it returns the individual class names
// of a label-list result, or nil for the NoLabels sentinel and for
// error-string results.
func SplitLabels(result string) []string {
	if result == "" || result == NoLabels || IsErrorResult(result) {
		return nil
	}
	return strings.Split(result, ",")
}

// loadLabels reads class names from a file, one per line, index = line number.
func loadLabels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read labels file: %w", err)
	}

	var labels []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			labels = append(labels, line)
		}
	}

	return labels, nil
}
