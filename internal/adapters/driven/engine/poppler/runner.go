package poppler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// ErrPDFToolNotFound is returned when a poppler tool is not installed.
var ErrPDFToolNotFound = fmt.Errorf("%w: pdftotext/pdfseparate/pdfinfo (poppler-utils)", domain.ErrToolNotFound)

// requiredTools lists the binaries the engine shells out to.
var requiredTools = []string{"pdfinfo", "pdfseparate", "pdftotext"}

// CommandRunner executes external commands.
// It allows the poppler tools to be replaced in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs commands with os/exec, optionally from a fixed directory.
type execRunner struct {
	toolDir string
}

// NewExecRunner returns a CommandRunner that resolves tools in toolDir,
// or on PATH when toolDir is empty.
func NewExecRunner(toolDir string) CommandRunner {
	return &execRunner{toolDir: toolDir}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	bin, err := lookTool(r.toolDir, name)
	if err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
	}
	return out, nil
}

func lookTool(toolDir, name string) (string, error) {
	candidate := name
	if toolDir != "" {
		candidate = filepath.Join(toolDir, name)
	}
	path, err := exec.LookPath(candidate)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, exec.ErrDot) {
			return "", fmt.Errorf("%w: %s", ErrPDFToolNotFound, name)
		}
		return "", fmt.Errorf("%w: %s: %w", ErrPDFToolNotFound, name, err)
	}
	return path, nil
}

// CheckAvailable verifies the poppler tools can be found.
func CheckAvailable(toolDir string) error {
	for _, tool := range requiredTools {
		if _, err := lookTool(toolDir, tool); err != nil {
			return err
		}
	}
	return nil
}

// InstallInstructions returns platform-specific installation instructions.
func InstallInstructions() string {
	return `pdftotext, pdfseparate and pdfinfo are required for PDF splitting.

Install poppler:
  macOS:         brew install poppler
  Ubuntu/Debian: sudo apt install poppler-utils
  Fedora/RHEL:   sudo dnf install poppler-utils
  Windows:       download poppler and set PAGESPLIT_POPPLER_PATH to its bin directory`
}
