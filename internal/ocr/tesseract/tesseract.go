package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strings"
	"time"

	"gretutor/internal/config"
	"gretutor/internal/domain"
	"gretutor/internal/metrics"
	"gretutor/internal/ocr"
)

// Engine implements port.OCREngine by running the tesseract binary.
// Images are piped to stdin as PNG and text is read from stdout.
type Engine struct {
	cmd            string
	language       string
	tessdataPrefix string
}

// NewEngine creates a Tesseract engine from the OCR config.
func NewEngine(cfg *config.OCRConfig) *Engine {
	cmd := cfg.TesseractCmd
	if cmd == "" {
		cmd = "tesseract"
	}
	return &Engine{
		cmd:            cmd,
		language:       cfg.Language,
		tessdataPrefix: cfg.TessdataPrefix,
	}
}

func (e *Engine) ExtractText(ctx context.Context, img image.Image) (string, error) {
	data, err := ocr.EncodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrOCR, err)
	}

	args := []string{"stdin", "stdout"}
	if e.language != "" {
		args = append(args, "-l", e.language)
	}

	start := time.Now()
	out, _, err := e.run(ctx, bytes.NewReader(data), args...)
	if err != nil {
		metrics.ObserveOCR("error", time.Since(start))
		return "", err
	}
	metrics.ObserveOCR("success", time.Since(start))
	return out, nil
}

// Version returns the engine version, e.g. "5.3.0".
func (e *Engine) Version(ctx context.Context) (string, error) {
	stdout, stderr, err := e.run(ctx, nil, "--version")
	if err != nil {
		return "", err
	}
	if v, err := parseVersion(stdout); err == nil {
		return v, nil
	}
	return parseVersion(stderr)
}

func (e *Engine) run(ctx context.Context, stdin *bytes.Reader, args ...string) (stdoutText, stderrText string, err error) {
	cmd := exec.CommandContext(ctx, e.cmd, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	if e.tessdataPrefix != "" {
		cmd.Env = append(os.Environ(), "TESSDATA_PREFIX="+e.tessdataPrefix)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if runErr := cmd.Run(); runErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", "", fmt.Errorf("%w: %v: %s", domain.ErrOCR, runErr, msg)
		}
		return "", "", fmt.Errorf("%w: %v", domain.ErrOCR, runErr)
	}
	return stdout.String(), stderr.String(), nil
}

// parseVersion extracts the version from `tesseract --version` output.
// Older releases print the banner on stderr, newer ones on stdout.
func parseVersion(out string) (string, error) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.EqualFold(fields[0], "tesseract") {
			return strings.TrimPrefix(fields[1], "v"), nil
		}
	}
	return "", fmt.Errorf("%w: unrecognized version output %q", domain.ErrOCR, strings.TrimSpace(out))
}
